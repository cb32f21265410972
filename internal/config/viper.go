// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fjacquet/fiobank/internal/logging"
)

// Output formats accepted by output.format.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCSV  = "csv"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	API struct {
		Token          string `mapstructure:"token" yaml:"-"` // Never serialize the token
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		Decimal        bool   `mapstructure:"decimal" yaml:"decimal"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"api" yaml:"api"`

	Retry struct {
		MaxAttempts     int `mapstructure:"max_attempts" yaml:"max_attempts"`
		InitialDelayMs  int `mapstructure:"initial_delay_ms" yaml:"initial_delay_ms"`
		MaxDelaySeconds int `mapstructure:"max_delay_seconds" yaml:"max_delay_seconds"`
	} `mapstructure:"retry" yaml:"retry"`

	Output struct {
		Format    string `mapstructure:"format" yaml:"format"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"output" yaml:"output"`
}

// Timeout returns the HTTP client timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// InitialDelay returns the first retry delay after throttling.
func (c *Config) InitialDelay() time.Duration {
	return time.Duration(c.Retry.InitialDelayMs) * time.Millisecond
}

// MaxDelay returns the cap on a single retry delay.
func (c *Config) MaxDelay() time.Duration {
	return time.Duration(c.Retry.MaxDelaySeconds) * time.Second
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig loads configuration from configFile, or from the standard
// locations when configFile is empty.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.fiobank")
		v.AddConfigPath(".fiobank")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("FIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. The token is usually exported as FIO_TOKEN
	if err := v.BindEnv("api.token", "FIO_TOKEN", "FIO_API_TOKEN"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind FIO_TOKEN environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("api.token", "")
	v.SetDefault("api.base_url", "https://fioapi.fio.cz/v1/rest/")
	v.SetDefault("api.decimal", true)
	v.SetDefault("api.timeout_seconds", 30)

	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_delay_ms", 500)
	v.SetDefault("retry.max_delay_seconds", 120)

	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("output.delimiter", ",")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if u, err := url.Parse(config.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %s", config.API.BaseURL)
	}

	if config.API.TimeoutSeconds < 1 || config.API.TimeoutSeconds > 600 {
		return fmt.Errorf("api.timeout_seconds must be between 1 and 600, got: %d", config.API.TimeoutSeconds)
	}

	if config.Retry.MaxAttempts < 1 || config.Retry.MaxAttempts > 10 {
		return fmt.Errorf("retry.max_attempts must be between 1 and 10, got: %d", config.Retry.MaxAttempts)
	}

	if config.Retry.InitialDelayMs < 0 || config.Retry.MaxDelaySeconds < 0 {
		return fmt.Errorf("retry delays must not be negative")
	}

	switch config.Output.Format {
	case FormatJSON, FormatYAML, FormatCSV:
	default:
		return fmt.Errorf("invalid output format: %s (must be 'json', 'yaml' or 'csv')", config.Output.Format)
	}

	if len(config.Output.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.Output.Delimiter)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}

// Validate checks the configuration after flags have been applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}
