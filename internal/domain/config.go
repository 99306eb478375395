package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"text/template"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Configuration defaults.
const (
	ConfigFileName             = "config.toml"
	DefaultDataDirName         = ".goalpilot"
	DefaultAddress             = ":5000"
	DefaultBasePath            = "/api"
	DefaultServerTimeout       = 60 * time.Second
	DefaultStoreBackend        = StoreJSON
	DefaultLLMBaseURL          = "https://openrouter.ai/api/v1"
	DefaultLLMModel            = "gpt-4o-mini"
	DefaultPlanTemperature     = 0.7
	DefaultFeedbackTemperature = 0.8
	DefaultMessageTemperature  = 0.7
	DefaultLLMTimeout          = 45 * time.Second
	DefaultLogLevel            = "info"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	Warnings []string     `toml:"-"`
	Server   ServerConfig `toml:"server"`
	Store    StoreConfig  `toml:"store"`
	LLM      LLMConfig    `toml:"llm"`
	Log      LogConfig    `toml:"log"`
}

// ServerConfig holds HTTP settings from the [server] section.
type ServerConfig struct {
	Address  string        `toml:"address,omitempty"`
	BasePath string        `toml:"base_path,omitempty"`
	Timeout  time.Duration `toml:"timeout,omitempty"`
}

// StoreConfig holds persistence settings from the [store] section.
type StoreConfig struct {
	Backend string `toml:"backend,omitempty"` // "json" (default) or "sqlite"
	Dir     string `toml:"dir,omitempty"`     // Empty = data dir
}

// LLMConfig holds generator settings from the [llm] section.
// An empty APIKey runs the generators offline on their fallbacks.
type LLMConfig struct {
	BaseURL             string        `toml:"base_url,omitempty"`
	Model               string        `toml:"model,omitempty"`
	APIKey              string        `toml:"api_key,omitempty"`
	PlanTemperature     float32       `toml:"plan_temperature,omitempty"`
	FeedbackTemperature float32       `toml:"feedback_temperature,omitempty"`
	MessageTemperature  float32       `toml:"message_temperature,omitempty"`
	Timeout             time.Duration `toml:"timeout,omitempty"`
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:  DefaultAddress,
			BasePath: DefaultBasePath,
			Timeout:  DefaultServerTimeout,
		},
		Store: StoreConfig{
			Backend: DefaultStoreBackend,
		},
		LLM: LLMConfig{
			BaseURL:             DefaultLLMBaseURL,
			Model:               DefaultLLMModel,
			PlanTemperature:     DefaultPlanTemperature,
			FeedbackTemperature: DefaultFeedbackTemperature,
			MessageTemperature:  DefaultMessageTemperature,
			Timeout:             DefaultLLMTimeout,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store.Backend)
	}
	return nil
}

// StoreDir returns the directory holding persisted state.
func (c *Config) StoreDir(dataDir string) string {
	if c.Store.Dir == "" {
		return dataDir
	}
	if filepath.IsAbs(c.Store.Dir) {
		return c.Store.Dir
	}
	return filepath.Join(dataDir, c.Store.Dir)
}

// RenderConfigTemplate renders a commented config file populated from cfg.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

// GlobalConfigDir returns the global config directory under configHome.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "goalpilot")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "goalpilot.log")
}

// GoalLogPath returns the path to a goal's log file.
func GoalLogPath(dataDir, goalID string) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("goal-%s.log", goalID))
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
