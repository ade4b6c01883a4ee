// Where: cli/internal/infra/archive/builder.go
// What: Package a function source directory into a deployable zip artifact.
// Why: The provider accepts a single zip whose root is the function directory contents.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/poruru/alicf/cli/internal/domain/function"
	"github.com/poruru/alicf/cli/internal/infra/fileops"
	"github.com/poruru/alicf/cli/internal/meta"
)

var ErrSourceNotFound = errors.New("function source directory not found")

// Builder writes artifacts for functions under Root into Root/.deploy.
type Builder struct {
	Root string
}

// NewBuilder returns a Builder for the given cloud functions root.
func NewBuilder(root string) Builder {
	return Builder{Root: root}
}

// ScratchDir returns the directory that holds built artifacts.
func (b Builder) ScratchDir() string {
	return filepath.Join(b.Root, meta.ScratchDir)
}

// ArtifactPath returns the deterministic artifact path for a function.
func (b Builder) ArtifactPath(name string) string {
	return filepath.Join(b.ScratchDir(), name+".zip")
}

// Build compresses <root>/<name> at maximum compression with its contents at the
// archive root and returns the absolute artifact path. An existing artifact is
// overwritten; a failed build leaves whatever was written in place.
func (b Builder) Build(name string) (string, error) {
	if err := function.ValidateName(name); err != nil {
		return "", err
	}
	sourceDir := filepath.Join(b.Root, name)
	if !fileops.DirExists(sourceDir) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, sourceDir)
	}
	if err := fileops.EnsureDir(b.ScratchDir()); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}

	target, err := filepath.Abs(b.ArtifactPath(name))
	if err != nil {
		return "", fmt.Errorf("resolve artifact path: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create artifact: %w", err)
	}
	if err := writeZip(out, sourceDir); err != nil {
		out.Close()
		return "", fmt.Errorf("write artifact %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close artifact: %w", err)
	}
	return target, nil
}

func writeZip(out io.Writer, sourceDir string) error {
	writer := zip.NewWriter(out)
	writer.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	err := filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if entry.Type()&fs.ModeSymlink != 0 && info.IsDir() {
			// Linked directories are skipped to avoid walking cycles.
			return nil
		}
		return addEntry(writer, path, filepath.ToSlash(rel), info)
	})
	if err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func addEntry(writer *zip.Writer, path, name string, info fs.FileInfo) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
		header.Method = zip.Store
		_, err := writer.CreateHeader(header)
		return err
	}
	header.Method = zip.Deflate

	dst, err := writer.CreateHeader(header)
	if err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(dst, src)
	return err
}
