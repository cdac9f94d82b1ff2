// Package templates renders the scaffolding files ship generates (config
// file, ignore file, ecosystem extras) from templates bundled with the
// binary.
//
// Templates are looked up along a handler chain: the concrete handler's
// template set is consulted first, then each fallback in order, ending at
// the shared "base" set. This is a flattened form of template inheritance:
// a handler overrides a template simply by bundling its own copy.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"
	"text/template"
)

//go:embed files
var templateFiles embed.FS

// ErrTemplateNotFound is returned when no set along the chain defines the
// requested template.
var ErrTemplateNotFound = errors.New("template not found")

// ErrRender wraps placeholder expansion failures.
var ErrRender = errors.New("template render failed")

// BaseSet is the template set every chain falls back to.
const BaseSet = "base"

// Data is the closed substitution context available to templates. There
// is deliberately no general expression evaluation: a template can only
// reference these fields and the two maps.
type Data struct {
	ProjectName string
	Repository  string
	NextVersion string
	Config      map[string]string
	Args        map[string]string
}

// cache holds parsed templates for the process lifetime, keyed by the
// embedded file path. Template content is immutable once the binary is
// built, so there is no invalidation.
var cache = map[string]*template.Template{}

// Lookup resolves name along chain and returns the parsed template. The
// chain lists template set names in precedence order; BaseSet is appended
// implicitly.
func Lookup(chain []string, name string) (*template.Template, error) {
	for _, set := range withBase(chain) {
		key := fileKey(set, name)
		if tmpl, ok := cache[key]; ok {
			return tmpl, nil
		}
		content, err := templateFiles.ReadFile(key)
		if err != nil {
			continue
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", key, err)
		}
		cache[key] = tmpl
		return tmpl, nil
	}
	return nil, fmt.Errorf("%w: %s (chain %s)", ErrTemplateNotFound, name, strings.Join(withBase(chain), " > "))
}

// Execute renders the named template against data.
func Execute(chain []string, name string, data Data) (string, error) {
	tmpl, err := Lookup(chain, name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return buf.String(), nil
}

func withBase(chain []string) []string {
	for _, set := range chain {
		if set == BaseSet {
			return chain
		}
	}
	return append(append([]string{}, chain...), BaseSet)
}

// fileKey maps a template name to its embedded path. Leading dots are
// stripped per path element so dotfile targets like .gitignore live as
// gitignore.tmpl in the bundle.
func fileKey(set, name string) string {
	parts := strings.Split(name, "/")
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(p, ".")
	}
	return path.Join("files", set, strings.Join(parts, "/")) + ".tmpl"
}
