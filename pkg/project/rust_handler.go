package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// RustHandler handles Cargo crates.
type RustHandler struct {
	Base
}

func NewRustHandler(dir string, silent bool, logger *logrus.Logger) *RustHandler {
	return &RustHandler{Base: NewBase("rust", []string{"rust"}, dir, silent, logger)}
}

func (h *RustHandler) CanHandle(hint string) bool {
	if strings.HasSuffix(hint, ".rs") {
		return true
	}
	_, err := os.Stat(filepath.Join(h.Dir, "Cargo.toml"))
	return err == nil
}

func (h *RustHandler) ProjectName() string {
	if cfg, err := h.Config(); err == nil {
		if name := cfg.Get("project_name"); name != "" {
			return name
		}
	}
	if name, _ := h.cargo(); name != "" {
		return name
	}
	return h.Base.ProjectName()
}

// NextVersion prefers the crate version declared in Cargo.toml.
func (h *RustHandler) NextVersion() (string, error) {
	if _, version := h.cargo(); version != "" {
		return version, nil
	}
	return h.Base.NextVersion()
}

// cargo returns the [package] name and version from Cargo.toml.
func (h *RustHandler) cargo() (name, version string) {
	data, err := os.ReadFile(filepath.Join(h.Dir, "Cargo.toml"))
	if err != nil {
		return "", ""
	}
	var doc struct {
		Package struct {
			Name    string `toml:"name"`
			Version string `toml:"version"`
		} `toml:"package"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", ""
	}
	return doc.Package.Name, doc.Package.Version
}

func (h *RustHandler) Build() error {
	if err := h.Run.Run("cargo", "build"); err != nil {
		return err
	}
	args := append([]string{"test"}, h.BuildTestOptions()...)
	return h.Run.Run("cargo", args...)
}

func (h *RustHandler) Clean() error {
	return h.Run.Run("cargo", "clean")
}

func (h *RustHandler) TestCoverage() error {
	return h.Run.Run("cargo", "tarpaulin")
}
