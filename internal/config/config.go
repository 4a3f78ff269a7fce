// Package config provides configuration management for reldate using Viper.
// It supports configuration from files, environment variables, and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jmylchreest/reldate/pkg/durfmt"
	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/intl"
)

// Default configuration values.
const (
	defaultServerPort      = 8080
	defaultServerTimeout   = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "RELDATE"

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig                 `mapstructure:"server"`
	Logging   LoggingConfig                `mapstructure:"logging"`
	Format    FormatConfig                 `mapstructure:"format"`
	Intl      IntlConfig                   `mapstructure:"intl"`
	Overrides map[string]map[string]string `mapstructure:"overrides"` // language -> unit -> "{number} ..." template
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format     string `mapstructure:"format"` // json, text
	AddSource  bool   `mapstructure:"add_source"`
	TimeFormat string `mapstructure:"time_format"`
}

// FormatConfig holds the defaults applied to formatting requests that leave
// an option unset.
type FormatConfig struct {
	Locale    string `mapstructure:"locale"` // empty = process environment
	Style     string `mapstructure:"style"`  // compact, short, long, longer
	Threshold string `mapstructure:"threshold"`
	TimeZone  string `mapstructure:"time_zone"` // IANA name, empty = local
}

// IntlConfig holds locale-data configuration.
type IntlConfig struct {
	// DurationFormat enables the native duration formatter. Disabling it
	// forces the relative-time extraction paths.
	DurationFormat bool `mapstructure:"duration_format"`
}

// Load reads configuration from file and environment variables.
// Environment variables take precedence over file configuration.
// Environment variables are prefixed with RELDATE_ and use underscores for nesting.
// Example: RELDATE_FORMAT_STYLE=long.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".reldate")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/reldate")
		v.AddConfigPath("$HOME")
	}

	BindEnv(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// BindEnv makes v read RELDATE_ environment variables.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// SetDefaults configures default values for all configuration options.
// This should be called before reading the config file to ensure defaults are in place.
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.read_timeout", defaultServerTimeout)
	v.SetDefault("server.write_timeout", defaultServerTimeout)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)

	// Format defaults
	v.SetDefault("format.locale", "")
	v.SetDefault("format.style", string(durfmt.StyleShort))
	v.SetDefault("format.threshold", duration.ThresholdTwice.String())
	v.SetDefault("format.time_zone", "")

	// Intl defaults
	v.SetDefault("intl.duration_format", true)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	const maxPort = 65535
	if c.Server.Port < 1 || c.Server.Port > maxPort {
		return fmt.Errorf("server.port must be between 1 and %d", maxPort)
	}

	// Logging validation
	validLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: trace, debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	// Format validation
	validStyles := map[string]bool{}
	for _, s := range durfmt.Styles {
		validStyles[string(s)] = true
	}
	if !validStyles[c.Format.Style] {
		return fmt.Errorf("format.style must be one of: compact, short, long, longer")
	}
	if _, err := c.Format.ThresholdPolicy(); err != nil {
		return fmt.Errorf("format.threshold: %w", err)
	}
	if c.Format.Locale != "" {
		if _, err := intl.ParseLocale(c.Format.Locale); err != nil {
			return fmt.Errorf("format.locale: %w", err)
		}
	}
	if _, err := c.Format.Location(); err != nil {
		return fmt.Errorf("format.time_zone: %w", err)
	}

	// Overrides validation
	if _, err := durfmt.ParseOverrides(c.Overrides); err != nil {
		return fmt.Errorf("overrides: %w", err)
	}

	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ThresholdPolicy parses the configured threshold.
func (c *FormatConfig) ThresholdPolicy() (duration.Threshold, error) {
	return duration.ParseThreshold(c.Threshold)
}

// Location loads the configured time zone. It returns nil for an empty
// setting, which keeps instants in their own location.
func (c *FormatConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return nil, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// Locales returns the configured locale as a preference list, or nil.
func (c *FormatConfig) Locales() []string {
	if c.Locale == "" {
		return nil
	}
	return []string{c.Locale}
}

// OverrideTable returns the built-in overrides with the configured ones
// layered on top.
func (c *Config) OverrideTable() (durfmt.Overrides, error) {
	custom, err := durfmt.ParseOverrides(c.Overrides)
	if err != nil {
		return nil, err
	}
	return durfmt.DefaultOverrides().Merge(custom), nil
}
