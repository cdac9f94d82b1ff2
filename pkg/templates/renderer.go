package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrDirectoryCreate wraps failures creating a target's parent directory.
var ErrDirectoryCreate = errors.New("cannot create directory")

// Renderer writes rendered templates into a project directory.
type Renderer struct {
	Dir    string // project root the template names are resolved against
	Chain  []string
	Force  bool // overwrite existing targets
	Silent bool
	Logger *logrus.Logger
}

// NewRenderer creates a Renderer for the given project directory and
// template chain.
func NewRenderer(dir string, chain []string, logger *logrus.Logger) *Renderer {
	return &Renderer{Dir: dir, Chain: chain, Logger: logger}
}

// RenderFile renders the named template to its target path under Dir.
// The template name doubles as the relative target path, with / as the
// separator. An existing target is left untouched unless Force is set;
// that makes scaffolding re-runnable without clobbering user edits.
func (r *Renderer) RenderFile(name string, data Data) error {
	target := filepath.Join(r.Dir, filepath.FromSlash(name))

	if !r.Force {
		if _, err := os.Stat(target); err == nil {
			if !r.Silent {
				r.Logger.Infof("%s already exists", name)
			}
			return nil
		}
	}

	text, err := Execute(r.Chain, name, data)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDirectoryCreate, dir, err)
		}
	}

	if err := os.WriteFile(target, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	if !r.Silent {
		r.Logger.Infof("wrote %s", name)
	}
	return nil
}

// RenderString renders the named template and returns the text instead of
// writing a file.
func (r *Renderer) RenderString(name string, data Data) (string, error) {
	return Execute(r.Chain, name, data)
}

// Describe returns a short human-readable description of the chain, used
// in debug logging.
func (r *Renderer) Describe() string {
	return strings.Join(withBase(r.Chain), " > ")
}
