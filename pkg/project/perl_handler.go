package project

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// PerlHandler handles CPAN-style Perl distributions built with
// ExtUtils::MakeMaker or Module::Build.
type PerlHandler struct {
	Base
}

func NewPerlHandler(dir string, silent bool, logger *logrus.Logger) *PerlHandler {
	h := &PerlHandler{Base: NewBase("perl", []string{"perl"}, dir, silent, logger)}
	h.extraScaffold = []string{"MANIFEST.SKIP"}
	return h
}

func (h *PerlHandler) CanHandle(hint string) bool {
	if strings.HasSuffix(hint, ".pm") || strings.Contains(hint, "::") {
		return true
	}
	for _, f := range []string{"Makefile.PL", "Build.PL"} {
		if _, err := os.Stat(filepath.Join(h.Dir, f)); err == nil {
			return true
		}
	}
	return false
}

func (h *PerlHandler) Build() error {
	if h.usesModuleBuild() {
		if err := h.Run.Run("perl", "Build.PL"); err != nil {
			return err
		}
		if err := h.Run.Run("./Build"); err != nil {
			return err
		}
		args := append([]string{"test"}, h.BuildTestOptions()...)
		return h.Run.Run("./Build", args...)
	}

	if err := h.Run.Run("perl", "Makefile.PL"); err != nil {
		return err
	}
	if err := h.Run.Run("make"); err != nil {
		return err
	}
	args := append([]string{"test"}, h.BuildTestOptions()...)
	return h.Run.Run("make", args...)
}

// Ship regenerates the MANIFEST and runs the distribution test before
// the generic push-and-tag sequence.
func (h *PerlHandler) Ship() error {
	if !h.usesModuleBuild() {
		if _, err := os.Stat(filepath.Join(h.Dir, "Makefile")); os.IsNotExist(err) {
			if err := h.Run.Run("perl", "Makefile.PL"); err != nil {
				return err
			}
		}
		if err := h.Run.Run("make", "manifest"); err != nil {
			return err
		}
		if err := h.Run.Run("make", "disttest"); err != nil {
			return err
		}
	}
	return h.Base.Ship()
}

func (h *PerlHandler) Clean() error {
	if h.usesModuleBuild() {
		return h.Run.Run("./Build", "clean")
	}
	if _, err := os.Stat(filepath.Join(h.Dir, "Makefile")); os.IsNotExist(err) {
		return nil
	}
	return h.Run.Run("make", "clean")
}

func (h *PerlHandler) TestCoverage() error {
	return h.Run.Run("cover", "-test")
}

// Actions exposes the manifest refresh as a standalone verb.
func (h *PerlHandler) Actions() map[string]Action {
	return map[string]Action{
		"manifest": func(args []string) error {
			return h.Run.Run("make", "manifest")
		},
	}
}

func (h *PerlHandler) usesModuleBuild() bool {
	if _, err := os.Stat(filepath.Join(h.Dir, "Build.PL")); err == nil {
		_, mmErr := os.Stat(filepath.Join(h.Dir, "Makefile.PL"))
		return os.IsNotExist(mmErr)
	}
	return false
}
