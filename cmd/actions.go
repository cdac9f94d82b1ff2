package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shiptool/ship/pkg/config"
	"github.com/shiptool/ship/pkg/logger"
	"github.com/shiptool/ship/pkg/project"
)

// errUnknownAction is the dispatcher's abort for unrecognized or
// inaccessible action names.
var errUnknownAction = errors.New("unknown action")

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// detectHandler loads the project config and picks the handler for the
// current directory. Every action except start goes through here, so a
// missing config file aborts the run.
func detectHandler(hint string) (project.Handler, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath(dir))
	if err != nil {
		return nil, err
	}
	return project.NewRegistry().Detect(dir, cfg, hint, silent(), logger.Get())
}

func configPath(dir string) string {
	p := config.Path()
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// dispatch routes a CLI verb that is not a built-in cobra command.
// Hyphens normalize to underscores so `ship test-coverage` and
// `ship test_coverage` are the same action.
func dispatch(name string, args []string) error {
	action := strings.ReplaceAll(name, "-", "_")
	if !identifierPattern.MatchString(action) {
		return fmt.Errorf("%w: %s", errUnknownAction, name)
	}

	// start is special: the handler class cannot be known before the
	// project exists, so it never requires a config.
	if action == "start" {
		return runStart(args)
	}

	h, err := detectHandler("")
	if err != nil {
		return err
	}
	return invoke(h, action, args)
}

// invoke runs one action on the handler, wrapped in its before/after
// hooks. Hooks run synchronously; a failing before hook aborts the
// action, and the after hook only runs on success.
func invoke(h project.Handler, action string, args []string) error {
	var fn func() error
	switch action {
	case "build":
		fn = h.Build
	case "ship":
		fn = h.Ship
	case "clean":
		fn = h.Clean
	case "test_coverage":
		fn = h.TestCoverage
	default:
		extra, ok := h.Actions()[action]
		if !ok {
			return fmt.Errorf("%w: %s", errUnknownAction, action)
		}
		fn = func() error { return extra(args) }
	}

	if err := h.Hook("before_" + action); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return h.Hook("after_" + action)
}
