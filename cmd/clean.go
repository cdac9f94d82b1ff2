package cmd

import (
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove build artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := detectHandler("")
			if err != nil {
				return err
			}
			return invoke(h, "clean", nil)
		},
	}
}
