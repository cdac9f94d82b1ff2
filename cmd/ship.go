package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/shiptool/ship/pkg/project"
)

var (
	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	summaryKeyStyle   = lipgloss.NewStyle().Faint(true)
	summaryValueStyle = lipgloss.NewStyle().Bold(true)
)

func newShipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ship",
		Short: "Push the current branch and tag the next version",
		Long: `Derives the next version from the project's changelog (or manifest),
pushes the current branch, creates the version tag, and pushes tags.
before_ship/after_ship hooks from .ship.conf wrap the sequence.

There is no rollback on partial failure: fix the cause and re-run.`,
		Args: cobra.NoArgs,
		RunE: runShip,
	}
}

func runShip(cmd *cobra.Command, args []string) error {
	h, err := detectHandler("")
	if err != nil {
		return err
	}

	if err := invoke(h, "ship", nil); err != nil {
		return err
	}

	if !silent() && isatty.IsTerminal(os.Stdout.Fd()) {
		printShipSummary(h)
	}
	return nil
}

func printShipSummary(h project.Handler) {
	version, err := h.NextVersion()
	if err != nil {
		return
	}
	body := fmt.Sprintf("%s %s\n%s %s",
		summaryKeyStyle.Render("project"), summaryValueStyle.Render(h.ProjectName()),
		summaryKeyStyle.Render("version"), summaryValueStyle.Render(version))
	fmt.Println(summaryBoxStyle.Render(body))
}
