package project

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/shiptool/ship/pkg/config"
)

// Factory builds a handler bound to a project directory.
type Factory func(dir string, silent bool, logger *logrus.Logger) Handler

// Registry holds the known handler classes.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry with all built-in handlers registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	r.Register("go", func(dir string, silent bool, logger *logrus.Logger) Handler {
		return NewGoHandler(dir, silent, logger)
	})
	r.Register("perl", func(dir string, silent bool, logger *logrus.Logger) Handler {
		return NewPerlHandler(dir, silent, logger)
	})
	r.Register("node", func(dir string, silent bool, logger *logrus.Logger) Handler {
		return NewNodeHandler(dir, silent, logger)
	})
	r.Register("python", func(dir string, silent bool, logger *logrus.Logger) Handler {
		return NewPythonHandler(dir, silent, logger)
	})
	r.Register("rust", func(dir string, silent bool, logger *logrus.Logger) Handler {
		return NewRustHandler(dir, silent, logger)
	})

	return r
}

// Register adds a handler class under the given name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Get builds the named handler, or fails with ErrLoad.
func (r *Registry) Get(name, dir string, silent bool, logger *logrus.Logger) (Handler, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLoad, name)
	}
	return f(dir, silent, logger), nil
}

// Names returns the registered handler names in detection order:
// longest name first, so more specific handlers win over generic ones,
// with a lexicographic tie-break for determinism.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}

// Detect picks the handler for dir. A configured class short-circuits
// probing entirely; otherwise every candidate is asked in detection
// order whether it recognizes the project.
func (r *Registry) Detect(dir string, cfg config.Config, hint string, silent bool, logger *logrus.Logger) (Handler, error) {
	if class := cfg.Get("class"); class != "" {
		return r.Get(class, dir, silent, logger)
	}

	for _, name := range r.Names() {
		h := r.factories[name](dir, silent, logger)
		if h.CanHandle(hint) {
			logger.Debugf("detected project kind: %s", name)
			return h, nil
		}
	}
	return nil, ErrDetection
}
