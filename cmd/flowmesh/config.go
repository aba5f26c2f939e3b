package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/flowmesh/flowmesh/logging"
)

// Config is the CLI configuration, loadable from a YAML file and FLOWMESH_*
// environment variables (env wins).
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

// LogConfig controls CLI logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug | info | warn | error
	Format string `mapstructure:"format"` // json | text
}

// ProvidersConfig holds per-provider model settings.
type ProvidersConfig struct {
	Anthropic ProviderConfig `mapstructure:"anthropic"`
	OpenAI    ProviderConfig `mapstructure:"openai"`
}

// ProviderConfig configures one model provider entry.
type ProviderConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LoadConfig reads the optional config file and environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	// Defaults register the keys so AutomaticEnv can populate them.
	v.SetDefault("providers.anthropic.api_key", "")
	v.SetDefault("providers.anthropic.model", "")
	v.SetDefault("providers.openai.api_key", "")
	v.SetDefault("providers.openai.model", "")

	v.SetEnvPrefix("FLOWMESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// LogLevel maps the configured level onto the logging package enum.
func (c *Config) LogLevel() logging.LogLevel {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return logging.LogLevelDebug
	case "warn":
		return logging.LogLevelWarn
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelInfo
	}
}
