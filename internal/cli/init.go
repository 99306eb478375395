package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the goalpilot data directory",
		Long: `Initialize the goalpilot data directory.

This command creates the data directory (default .goalpilot/) with:
- goals, tasks and progress collections (JSON files or a SQLite database)
- logs/: directory for log files

Running it again keeps existing records.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitStoreUseCase().Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goalpilot already initialized in %s\n", out.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized goalpilot in %s\n", out.DataDir)
			return nil
		},
	}
}
