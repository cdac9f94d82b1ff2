package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// NodeHandler handles npm packages.
type NodeHandler struct {
	Base
}

func NewNodeHandler(dir string, silent bool, logger *logrus.Logger) *NodeHandler {
	return &NodeHandler{Base: NewBase("node", []string{"node"}, dir, silent, logger)}
}

func (h *NodeHandler) CanHandle(hint string) bool {
	if strings.HasSuffix(hint, ".js") || strings.HasSuffix(hint, ".ts") {
		return true
	}
	_, err := os.Stat(filepath.Join(h.Dir, "package.json"))
	return err == nil
}

func (h *NodeHandler) ProjectName() string {
	if cfg, err := h.Config(); err == nil {
		if name := cfg.Get("project_name"); name != "" {
			return name
		}
	}
	if name := h.packageField("name"); name != "" {
		return name
	}
	return h.Base.ProjectName()
}

// NextVersion prefers the package.json version over the changelog scan,
// since npm already requires the manifest to carry the release version.
func (h *NodeHandler) NextVersion() (string, error) {
	if v := h.packageField("version"); v != "" {
		return v, nil
	}
	return h.Base.NextVersion()
}

func (h *NodeHandler) packageField(field string) string {
	data, err := os.ReadFile(filepath.Join(h.Dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg map[string]interface{}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	if s, ok := pkg[field].(string); ok {
		return s
	}
	return ""
}

func (h *NodeHandler) Build() error {
	if err := h.Run.Run("npm", "install"); err != nil {
		return err
	}
	args := append([]string{"test"}, h.BuildTestOptions()...)
	return h.Run.Run("npm", args...)
}

func (h *NodeHandler) Clean() error {
	return h.Run.Run("npm", "run", "clean", "--if-present")
}

func (h *NodeHandler) TestCoverage() error {
	return h.Run.Run("npm", "run", "coverage", "--if-present")
}
