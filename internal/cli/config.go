package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage goalpilot configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Sources are applied in order: defaults, global config, data-dir config,
then environment variables (GOALPILOT_*, OPENROUTER_API_KEY, PORT).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.LocalConfig} {
				if info.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// formatEffectiveConfig writes cfg as TOML with durations as strings and the API key masked.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	apiKey := ""
	if cfg.LLM.APIKey != "" {
		apiKey = "********"
	}
	output := map[string]any{
		"server": map[string]any{
			"address":   cfg.Server.Address,
			"base_path": cfg.Server.BasePath,
			"timeout":   cfg.Server.Timeout.String(),
		},
		"store": map[string]any{
			"backend": cfg.Store.Backend,
			"dir":     cfg.Store.Dir,
		},
		"llm": map[string]any{
			"base_url":             cfg.LLM.BaseURL,
			"model":                cfg.LLM.Model,
			"api_key":              apiKey,
			"plan_temperature":     cfg.LLM.PlanTemperature,
			"feedback_temperature": cfg.LLM.FeedbackTemperature,
			"message_temperature":  cfg.LLM.MessageTemperature,
			"timeout":              cfg.LLM.Timeout.String(),
		},
		"log": map[string]any{
			"level": cfg.Log.Level,
		},
	}

	if err := toml.NewEncoder(w).Encode(output); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a configuration file template populated with defaults to stdout.

It does not read existing configuration files and works even if they are broken.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates the data-dir configuration file at .goalpilot/config.toml.
With --global, creates the global configuration file at ~/.config/goalpilot/config.toml.

Error conditions:
- Target file already exists: error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global,
				Config: domain.NewDefaultConfig(),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}
