package cmd

import (
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build and test the project with its ecosystem tools",
		Long: `Runs the detected ecosystem's build and test sequence, wrapped in the
before_build/after_build hooks from .ship.conf. Extra test arguments
come from the build_test_options config key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := detectHandler("")
			if err != nil {
				return err
			}
			return invoke(h, "build", nil)
		},
	}
}
