package cli

import (
	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// Same as running `goalpilot` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long:  `Launch the interactive terminal user interface for browsing goals and checking off daily tasks.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
