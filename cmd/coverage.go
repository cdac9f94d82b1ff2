package cmd

import (
	"github.com/spf13/cobra"
)

func newCoverageCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "test_coverage",
		Aliases: []string{"test-coverage", "coverage"},
		Short:   "Run the test suite with coverage measurement",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := detectHandler("")
			if err != nil {
				return err
			}
			return invoke(h, "test_coverage", nil)
		},
	}
}
