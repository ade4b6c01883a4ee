// Where: cli/internal/domain/template/renderer.go
// What: Render the boilerplate files of a new cloud function.
// Why: Keep scaffold content in embedded templates parameterized by function name.
package template

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/poruru/alicf/cli/assets"
)

const templateDir = "scaffold-templates"

// DefaultAuthor is written to the generated package.json.
const DefaultAuthor = "alicf@CoCoding"

// ScaffoldFiles lists the generated files in write order:
// entry point, manifest, platform binding shim, local debug harness.
var ScaffoldFiles = []string{"index.js", "package.json", "alicf.js", "debug.js"}

var templateCache sync.Map

// ScaffoldData parameterizes the scaffold templates.
type ScaffoldData struct {
	Name   string
	Author string
}

// File is one rendered scaffold file, named relative to the function directory.
type File struct {
	Name    string
	Content string
}

// RenderScaffold renders every scaffold file for a function.
func RenderScaffold(data ScaffoldData) ([]File, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, fmt.Errorf("function name is required")
	}
	if strings.TrimSpace(data.Author) == "" {
		data.Author = DefaultAuthor
	}

	files := make([]File, 0, len(ScaffoldFiles))
	for _, name := range ScaffoldFiles {
		content, err := renderTemplate(name+".tmpl", data)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		files = append(files, File{Name: name, Content: content})
	}
	return files, nil
}

func renderTemplate(name string, data any) (string, error) {
	tmpl, err := loadTemplate(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func loadTemplate(name string) (*template.Template, error) {
	if value, ok := templateCache.Load(name); ok {
		cached, ok := value.(*template.Template)
		if !ok {
			return nil, fmt.Errorf("template cache type mismatch for %s", name)
		}
		return cached, nil
	}
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(assets.ScaffoldTemplatesFS, path.Join(templateDir, name))
	if err != nil {
		return nil, err
	}
	templateCache.Store(name, tmpl)
	return tmpl, nil
}
