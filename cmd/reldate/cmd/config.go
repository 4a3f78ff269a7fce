package cmd

import (
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/reldate/internal/config"
	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/durfmt"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  `Commands for managing reldate configuration.`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the effective configuration",
	Long: `Dump the effective configuration values in YAML format.

This shows all available configuration options with the values in effect
after defaults, the config file and environment variables are merged. You can
redirect this output to a file to create a configuration template:

  reldate config dump > .reldate.yaml

Environment variables use the RELDATE_ prefix and underscores for nesting.
Example: format.style -> RELDATE_FORMAT_STYLE`,
	RunE: runConfigDump,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configDumpCmd)

	configDumpCmd.Flags().Bool("builtin-overrides", false, "include the built-in compact override templates")
}

// toMap converts a struct to a map, formatting durations for human readability.
func toMap(v any) map[string]any {
	result := make(map[string]any)
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		key := fieldType.Tag.Get("mapstructure")
		if key == "" {
			key = fieldType.Name
		}

		switch v := field.Interface().(type) {
		case time.Duration:
			result[key] = duration.Format(v)
		default:
			if field.Kind() == reflect.Struct {
				result[key] = toMap(field.Interface())
			} else {
				result[key] = field.Interface()
			}
		}
	}
	return result
}

// overridesToMap renders a template table in its configuration shape.
func overridesToMap(o durfmt.Overrides) map[string]map[string]string {
	out := make(map[string]map[string]string, len(o))
	for _, lang := range o.Languages() {
		out[lang] = make(map[string]string, len(o[lang]))
		for unit, t := range o[lang] {
			out[lang][unit.String()] = t.String()
		}
	}
	return out
}

func runConfigDump(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	builtin, _ := cmd.Flags().GetBool("builtin-overrides")
	return dumpConfig(cmd.OutOrStdout(), cfg, builtin)
}

func dumpConfig(w io.Writer, cfg *config.Config, builtin bool) error {
	cfgMap := toMap(cfg)
	if builtin {
		table, err := cfg.OverrideTable()
		if err != nil {
			return err
		}
		cfgMap["overrides"] = overridesToMap(table)
	}

	yamlData, err := yaml.Marshal(cfgMap)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	fmt.Fprintln(w, "# reldate Configuration File")
	fmt.Fprintln(w, "# ===========================")
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# Duration format: 30s, 5m, 1h")
	fmt.Fprintln(w, "# Styles: compact, short, long, longer")
	fmt.Fprintln(w, "# Thresholds: 1, 1.5, 2 (once, twice)")
	fmt.Fprintln(w, "# Override templates must contain {number} exactly once.")
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w, "# Environment variable overrides:")
	fmt.Fprintln(w, "#   RELDATE_SERVER_HOST, RELDATE_SERVER_PORT")
	fmt.Fprintln(w, "#   RELDATE_LOGGING_LEVEL, RELDATE_LOGGING_FORMAT")
	fmt.Fprintln(w, "#   RELDATE_FORMAT_LOCALE, RELDATE_FORMAT_STYLE, RELDATE_FORMAT_THRESHOLD")
	fmt.Fprintln(w, "#   RELDATE_INTL_DURATION_FORMAT")
	fmt.Fprintln(w, "#")
	fmt.Fprintln(w)
	_, err = w.Write(yamlData)
	return err
}
