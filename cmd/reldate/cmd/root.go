// Package cmd implements the CLI commands for reldate.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/reldate/internal/config"
	"github.com/jmylchreest/reldate/internal/observability"
	"github.com/jmylchreest/reldate/internal/version"
	"github.com/jmylchreest/reldate/pkg/durfmt"
	"github.com/jmylchreest/reldate/pkg/intl/cldr"
	"github.com/jmylchreest/reldate/pkg/reldate"
)

// cfgFile holds the config file path from CLI flag.
var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "reldate",
	Short:   "Locale-aware relative date formatting",
	Version: version.Short(),
	Long: `reldate renders an instant as "{date}({weekday}) {time}({duration})",
for example "25-11-26(Wed) 10:00 PM(2 days)", in the caller's locale.

It can format from the command line or serve the same formatting over an
HTTP API.`,
	SilenceUsage: true,
	// PersistentPreRunE is set in init() to avoid initialization cycle
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("executing root command: %w", err)
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	// Set PersistentPreRunE here to avoid initialization cycle
	// (initLogging references rootCmd.PersistentFlags)
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return initLogging()
	}

	// Global flags
	// Note: These flags are NOT bound to viper. Instead, we check if they were
	// explicitly set using Changed() and only then override the config/env values.
	// This preserves the correct priority: CLI flag > env var > config > default
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.reldate.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "json", "log format (text, json)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set default configuration values before reading config file
	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config with name ".reldate" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath("/etc/reldate")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".reldate")
	}

	config.BindEnv(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initLogging configures the slog logger based on configuration.
//
// Priority order (highest to lowest):
//  1. CLI flags (--log-level, --log-format) - only if explicitly provided
//  2. Environment variables (RELDATE_LOGGING_LEVEL, RELDATE_LOGGING_FORMAT)
//  3. Config file values
//  4. Built-in defaults (info, json)
func initLogging() error {
	// Start with config/env values (viper handles precedence of env > config > default)
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	// Override with CLI flags only if explicitly set by user.
	// We don't bind flags to viper because viper's flag layer would always
	// override env/config, even when using the flag's default value.
	if rootCmd.PersistentFlags().Changed("log-level") {
		level, _ = rootCmd.PersistentFlags().GetString("log-level")
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		format, _ = rootCmd.PersistentFlags().GetString("log-format")
	}

	logCfg := config.LoggingConfig{
		Level:      strings.ToLower(level),
		Format:     strings.ToLower(format),
		AddSource:  viper.GetBool("logging.add_source"),
		TimeFormat: viper.GetString("logging.time_format"),
	}

	// Handle "warning" as an alias for "warn"
	if logCfg.Level == "warning" {
		logCfg.Level = "warn"
	}

	logger := observability.NewLogger(logCfg)
	logger = observability.WithApp(logger, version.ApplicationName, version.Version)
	observability.SetDefault(logger)

	return nil
}

// loadConfig validates the merged flag, env, file and default values.
func loadConfig() (*config.Config, error) {
	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newFormatter builds a formatter from cfg: the embedded locale catalog, the
// merged override table and a component logger.
func newFormatter(cfg *config.Config, logger *slog.Logger) (*reldate.Formatter, *cldr.Catalog, error) {
	var opts []cldr.Option
	if !cfg.Intl.DurationFormat {
		opts = append(opts, cldr.WithoutDurationFormat())
	}
	catalog, err := cldr.New(opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("loading locale data: %w", err)
	}

	overrides, err := cfg.OverrideTable()
	if err != nil {
		return nil, nil, fmt.Errorf("loading overrides: %w", err)
	}

	f, err := reldate.New(
		reldate.WithToolkit(catalog.Toolkit()),
		reldate.WithOverrides(overrides),
		reldate.WithLogger(observability.WithComponent(logger, "formatter")),
	)
	if err != nil {
		return nil, nil, err
	}
	return f, catalog, nil
}

// formatDefaults resolves the format section of cfg.
func formatDefaults(cfg *config.Config) (reldate.Options, error) {
	threshold, err := cfg.Format.ThresholdPolicy()
	if err != nil {
		return reldate.Options{}, err
	}
	loc, err := cfg.Format.Location()
	if err != nil {
		return reldate.Options{}, err
	}
	return reldate.Options{
		Style:     durfmt.ParseStyle(cfg.Format.Style),
		Threshold: threshold,
		Locales:   cfg.Format.Locales(),
		Location:  loc,
	}, nil
}

// mustBindPFlag binds a viper key to a cobra flag and panics if binding fails.
// This helper ensures lint-compliant error handling for viper.BindPFlag.
func mustBindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("failed to bind flag %q to key %q: %v", flag.Name, key, err))
	}
}
