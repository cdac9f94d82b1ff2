package project

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/mod/modfile"
)

// GoHandler handles Go module projects.
type GoHandler struct {
	Base
}

func NewGoHandler(dir string, silent bool, logger *logrus.Logger) *GoHandler {
	return &GoHandler{Base: NewBase("go", []string{"go"}, dir, silent, logger)}
}

func (h *GoHandler) CanHandle(hint string) bool {
	if strings.HasSuffix(hint, ".go") {
		return true
	}
	_, err := os.Stat(filepath.Join(h.Dir, "go.mod"))
	return err == nil
}

// ProjectName prefers the configured name, then the module path's last
// element.
func (h *GoHandler) ProjectName() string {
	if cfg, err := h.Config(); err == nil {
		if name := cfg.Get("project_name"); name != "" {
			return name
		}
	}
	if mod := h.modulePath(); mod != "" {
		return path.Base(mod)
	}
	return h.Base.ProjectName()
}

func (h *GoHandler) modulePath() string {
	goModPath := filepath.Join(h.Dir, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return ""
	}
	f, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return ""
	}
	return f.Module.Mod.Path
}

func (h *GoHandler) Build() error {
	if err := h.Run.Run("go", "build", "./..."); err != nil {
		return err
	}
	args := append([]string{"test"}, h.BuildTestOptions()...)
	return h.Run.Run("go", append(args, "./...")...)
}

func (h *GoHandler) Clean() error {
	return h.Run.Run("go", "clean")
}

func (h *GoHandler) TestCoverage() error {
	return h.Run.Run("go", "test", "-coverprofile=coverage.out", "./...")
}
