// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	dataDir       string // Path to the .goalpilot data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/goalpilot)
}

// envOverrides holds the raw environment overrides.
// Values stay strings so that a variable set to "" counts as unset.
type envOverrides struct {
	Address       string `env:"GOALPILOT_ADDRESS"`
	Port          string `env:"PORT"`
	BasePath      string `env:"GOALPILOT_BASE_PATH"`
	ServerTimeout string `env:"GOALPILOT_SERVER_TIMEOUT"`
	Store         string `env:"GOALPILOT_STORE"`
	StoreDir      string `env:"GOALPILOT_STORE_DIR"`
	LLMBaseURL    string `env:"GOALPILOT_LLM_BASE_URL"`
	LLMModel      string `env:"GOALPILOT_LLM_MODEL"`
	APIKey        string `env:"OPENROUTER_API_KEY"`
	LLMTimeout    string `env:"GOALPILOT_LLM_TIMEOUT"`
	LogLevel      string `env:"LOG_LEVEL"`
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration: default <- global <- local <- environment.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	if err := l.applyEnv(base); err != nil {
		return nil, err
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// applyEnv overrides cfg with non-empty environment variables.
// PORT is honoured as ":<PORT>" unless GOALPILOT_ADDRESS is set.
func (l *Loader) applyEnv(cfg *domain.Config) error {
	var env envOverrides
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	switch {
	case env.Address != "":
		cfg.Server.Address = env.Address
	case env.Port != "":
		cfg.Server.Address = ":" + env.Port
	}
	setIfSet(&cfg.Server.BasePath, env.BasePath)
	setIfSet(&cfg.Store.Backend, env.Store)
	setIfSet(&cfg.Store.Dir, env.StoreDir)
	setIfSet(&cfg.LLM.BaseURL, env.LLMBaseURL)
	setIfSet(&cfg.LLM.Model, env.LLMModel)
	setIfSet(&cfg.LLM.APIKey, env.APIKey)
	setIfSet(&cfg.Log.Level, env.LogLevel)

	if err := parseEnvDuration(&cfg.Server.Timeout, "GOALPILOT_SERVER_TIMEOUT", env.ServerTimeout); err != nil {
		return err
	}
	return parseEnvDuration(&cfg.LLM.Timeout, "GOALPILOT_LLM_TIMEOUT", env.LLMTimeout)
}

func setIfSet(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func parseEnvDuration(dst *time.Duration, name, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("read environment: %s: %w", name, err)
	}
	*dst = d
	return nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warn("unknown section: %s", section)
			continue
		}
		switch section {
		case "server":
			for k, v := range m {
				switch k {
				case "address":
					setString(&res.Server.Address, v)
				case "base_path":
					setString(&res.Server.BasePath, v)
				case "timeout":
					if !setDuration(&res.Server.Timeout, v) {
						warn("invalid duration in [server]: timeout = %v", v)
					}
				default:
					warn("unknown key in [server]: %s", k)
				}
			}
		case "store":
			for k, v := range m {
				switch k {
				case "backend":
					setString(&res.Store.Backend, v)
				case "dir":
					setString(&res.Store.Dir, v)
				default:
					warn("unknown key in [store]: %s", k)
				}
			}
		case "llm":
			for k, v := range m {
				switch k {
				case "base_url":
					setString(&res.LLM.BaseURL, v)
				case "model":
					setString(&res.LLM.Model, v)
				case "api_key":
					setString(&res.LLM.APIKey, v)
				case "plan_temperature":
					setFloat(&res.LLM.PlanTemperature, v)
				case "feedback_temperature":
					setFloat(&res.LLM.FeedbackTemperature, v)
				case "message_temperature":
					setFloat(&res.LLM.MessageTemperature, v)
				case "timeout":
					if !setDuration(&res.LLM.Timeout, v) {
						warn("invalid duration in [llm]: timeout = %v", v)
					}
				default:
					warn("unknown key in [llm]: %s", k)
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					setString(&res.Log.Level, v)
				default:
					warn("unknown key in [log]: %s", k)
				}
			}
		default:
			warn("unknown section: %s", section)
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

func setString(dst *string, v any) {
	if s, ok := v.(string); ok {
		*dst = s
	}
}

func setFloat(dst *float32, v any) {
	switch n := v.(type) {
	case float64:
		*dst = float32(n)
	case int64:
		*dst = float32(n)
	}
}

// setDuration accepts a Go duration string ("45s") or whole seconds.
func setDuration(dst *time.Duration, v any) bool {
	switch d := v.(type) {
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return false
		}
		*dst = parsed
	case int64:
		*dst = time.Duration(d) * time.Second
	default:
		return false
	}
	return true
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	if override.Server.Address != "" {
		result.Server.Address = override.Server.Address
	}
	if override.Server.BasePath != "" {
		result.Server.BasePath = override.Server.BasePath
	}
	if override.Server.Timeout != 0 {
		result.Server.Timeout = override.Server.Timeout
	}
	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Dir != "" {
		result.Store.Dir = override.Store.Dir
	}
	if override.LLM.BaseURL != "" {
		result.LLM.BaseURL = override.LLM.BaseURL
	}
	if override.LLM.Model != "" {
		result.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		result.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.PlanTemperature != 0 {
		result.LLM.PlanTemperature = override.LLM.PlanTemperature
	}
	if override.LLM.FeedbackTemperature != 0 {
		result.LLM.FeedbackTemperature = override.LLM.FeedbackTemperature
	}
	if override.LLM.MessageTemperature != 0 {
		result.LLM.MessageTemperature = override.LLM.MessageTemperature
	}
	if override.LLM.Timeout != 0 {
		result.LLM.Timeout = override.LLM.Timeout
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return &result
}
