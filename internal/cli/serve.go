package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/httpapi"
)

// newServeCommand creates the serve command for the HTTP API.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the JSON HTTP API (goals, tasks, progress and coaching endpoints).

The listen address defaults to [server].address (":5000"), or ":$PORT"
when PORT is set. Every route lives under [server].base_path ("/api").
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := c.AppConfig.Server
			if addr != "" {
				cfg.Address = addr
			}

			ln, err := net.Listen("tcp", cfg.Address)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Address, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s%s\n", ln.Addr().String(), cfg.BasePath)
			return httpapi.Serve(ctx, c.Slog, ln, httpapi.NewHandler(c.Slog, c, cfg), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}
