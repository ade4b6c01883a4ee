// Where: cli/internal/infra/scaffold/scaffold.go
// What: Write boilerplate function directories and list existing functions.
// Why: New functions start from the same entry point, manifest and debug harness.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/poruru/alicf/cli/internal/domain/function"
	"github.com/poruru/alicf/cli/internal/domain/template"
	"github.com/poruru/alicf/cli/internal/infra/fileops"
)

// Result describes the function directory after Create.
type Result struct {
	Dir     string
	Created bool
	Files   []string
}

// Writer creates function directories under Root.
type Writer struct {
	Root   string
	Author string
}

// Create writes the scaffold for name unless <root>/<name> already exists, in
// which case nothing is written and the existing path is returned.
func (w Writer) Create(name string) (Result, error) {
	if err := function.ValidateName(name); err != nil {
		return Result{}, err
	}
	dir := filepath.Join(w.Root, name)
	if _, err := os.Stat(dir); err == nil {
		return Result{Dir: dir}, nil
	} else if !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("stat function dir: %w", err)
	}

	files, err := template.RenderScaffold(template.ScaffoldData{Name: name, Author: w.Author})
	if err != nil {
		return Result{}, err
	}
	if err := fileops.EnsureDir(dir); err != nil {
		return Result{}, fmt.Errorf("create function dir: %w", err)
	}
	result := Result{Dir: dir, Created: true}
	for _, file := range files {
		if err := fileops.WriteFile(filepath.Join(dir, file.Name), file.Content, 0o644); err != nil {
			return Result{}, fmt.Errorf("write %s: %w", file.Name, err)
		}
		result.Files = append(result.Files, file.Name)
	}
	return result, nil
}

// ListFunctions returns the sorted function directories directly under root.
// Hidden directories such as the artifact scratch dir are skipped.
func ListFunctions(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read functions root: %w", err)
	}
	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if function.ValidateName(entry.Name()) != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
