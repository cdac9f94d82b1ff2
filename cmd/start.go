package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shiptool/ship/pkg/config"
	"github.com/shiptool/ship/pkg/logger"
	"github.com/shiptool/ship/pkg/project"
)

var (
	startYes   bool
	startForce bool
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [name]",
		Short: "Initialize release scaffolding in the current directory",
		Long: `Initializes version control storage if needed, writes the default
.ship.conf and ignore file, stages everything, and commits when a
project name is given.

The name also serves as a detection hint: start picks the handler whose
project files (or file name conventions) match, falling back to the
generic scaffolding when nothing matches yet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStart(args)
		},
	}
	cmd.Flags().BoolVarP(&startYes, "yes", "y", false, "accept defaults without prompting")
	cmd.Flags().BoolVar(&startForce, "force", false, "overwrite existing scaffolding files")
	return cmd
}

func runStart(args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	opts := project.StartOptions{Target: target, Force: startForce}
	if target == "" && !startYes && isatty.IsTerminal(os.Stdout.Fd()) {
		answers, ok, err := promptStart(defaultProjectName(dir))
		if err != nil {
			return err
		}
		if ok {
			opts.Target = answers.Name
			opts.License = answers.License
		}
	}

	h := detectStartHandler(dir, opts.Target)
	return h.Start(opts)
}

// detectStartHandler picks the concrete handler when one already
// recognizes the directory (or the name hint), and the generic base
// handler otherwise. Absence of a config file is tolerated here.
func detectStartHandler(dir, hint string) project.Handler {
	cfg, err := config.LoadOrEmpty(configPath(dir))
	if err != nil {
		cfg = config.Config{}
	}
	h, err := project.NewRegistry().Detect(dir, cfg, hint, silent(), logger.Get())
	if err != nil {
		return project.NewBaseHandler(dir, silent(), logger.Get())
	}
	return h
}
