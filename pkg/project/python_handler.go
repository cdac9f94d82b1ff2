package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// PythonHandler handles pyproject.toml-based Python packages.
type PythonHandler struct {
	Base
}

func NewPythonHandler(dir string, silent bool, logger *logrus.Logger) *PythonHandler {
	return &PythonHandler{Base: NewBase("python", []string{"python"}, dir, silent, logger)}
}

func (h *PythonHandler) CanHandle(hint string) bool {
	if strings.HasSuffix(hint, ".py") {
		return true
	}
	_, err := os.Stat(filepath.Join(h.Dir, "pyproject.toml"))
	return err == nil
}

func (h *PythonHandler) ProjectName() string {
	if cfg, err := h.Config(); err == nil {
		if name := cfg.Get("project_name"); name != "" {
			return name
		}
	}
	if name, _ := h.pyproject(); name != "" {
		return name
	}
	return h.Base.ProjectName()
}

// NextVersion prefers the pyproject version when one is declared.
func (h *PythonHandler) NextVersion() (string, error) {
	if _, version := h.pyproject(); version != "" {
		return version, nil
	}
	return h.Base.NextVersion()
}

// pyproject returns the [project] name and version from pyproject.toml.
func (h *PythonHandler) pyproject() (name, version string) {
	data, err := os.ReadFile(filepath.Join(h.Dir, "pyproject.toml"))
	if err != nil {
		return "", ""
	}
	var doc struct {
		Project struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"project"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", ""
	}
	return doc.Project.Name, doc.Project.Version
}

func (h *PythonHandler) Build() error {
	args := append([]string{"-m", "pytest"}, h.BuildTestOptions()...)
	if err := h.Run.Run("python", args...); err != nil {
		return err
	}
	return h.Run.Run("python", "-m", "build")
}

func (h *PythonHandler) Clean() error {
	return h.Run.RunScript("rm -rf build dist *.egg-info")
}

func (h *PythonHandler) TestCoverage() error {
	return h.Run.Run("python", "-m", "pytest", "--cov")
}
