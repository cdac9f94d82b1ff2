// Package cmd wires the ship CLI: built-in lifecycle commands plus
// dispatch-by-name for any extra verb the detected handler exposes.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shiptool/ship/pkg/logger"
)

var (
	flagSilent  bool
	flagVerbose bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship [action] [args...]",
		Short: "Automate routine release steps for the current project",
		Long: `ship automates the routine steps of preparing and releasing a project:
scaffolding (start), building (build), version tagging and pushing (ship),
cleaning (clean), and coverage (test_coverage).

It reads the files your ecosystem already expects (changelog, manifest,
build descriptor) and a flat .ship.conf, instead of imposing new
conventions. With no action, ship ships.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				logger.Get().SetLevel(logrus.DebugLevel)
			}
		},
		// Arbitrary args so unrecognized verbs reach RunE for
		// dispatch-by-name instead of cobra's unknown-command error.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No action defaults to ship; anything else is dispatched to
			// the detected handler by name.
			if len(args) == 0 {
				return runShip(cmd, nil)
			}
			return dispatch(args[0], args[1:])
		},
	}

	addGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(newStartCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newShipCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newCoverageCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newSchemaCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&flagSilent, "silent", false, "suppress command echo and child output")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. On failure the process prints the
// message prefixed with !! and exits non-zero; that is the single abort
// path for every error in the tool.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "!! %v\n", err)
		os.Exit(1)
	}
}

func silent() bool {
	return flagSilent || logger.SilentEnabled()
}
