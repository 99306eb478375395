// Package cli provides the command-line interface for goalpilot.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupGoal  = "goal"
	groupServe = "serve"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for goalpilot.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "goalpilot",
		Short: "AI goal coach with daily plans and progress tracking",
		Long: `goalpilot turns a goal and a duration into a day-by-day plan,
tracks which daily tasks are done, and offers coaching feedback,
reminders and weekly reports.

Run without arguments to open the interactive TUI.
Run 'goalpilot serve' to expose the HTTP API.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil || c.ConfigLoader == nil {
				return nil
			}
			cfg, err := c.ConfigLoader.Load()
			if err != nil {
				// Reported by the command itself when it matters
				return nil
			}
			for _, w := range cfg.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupGoal, Title: "Goals and Tasks:"},
		&cobra.Group{ID: groupServe, Title: "Interfaces:"},
	)

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	goalCmd := newGoalCommand(c)
	goalCmd.GroupID = groupGoal

	taskCmd := newTaskCommand(c)
	taskCmd.GroupID = groupGoal

	serveCmd := newServeCommand(c)
	serveCmd.GroupID = groupServe

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupServe

	root.AddCommand(
		initCmd,
		configCmd,
		goalCmd,
		taskCmd,
		serveCmd,
		tuiCmd,
	)

	return root
}

// launchTUI runs the interactive TUI until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return fmt.Errorf("tui requires an initialized container")
	}
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
