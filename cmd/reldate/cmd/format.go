package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/reldate/pkg/duration"
	"github.com/jmylchreest/reldate/pkg/reldate"
)

var formatCmd = &cobra.Command{
	Use:   "format <to>",
	Short: "Format an instant relative to now",
	Long: `Format an instant as "{date}({weekday}) {time}({duration})".

The instant can be an RFC 3339 timestamp, a relative phrase or an offset:

  reldate format 2025-11-26T22:00:00Z
  reldate format "in 2 days" --style long --locale he-IL
  reldate format -- -90m --style compact

Style, threshold, locale and time zone default to the format section of the
configuration (RELDATE_FORMAT_STYLE, RELDATE_FORMAT_LOCALE, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: runFormat,
}

func init() {
	rootCmd.AddCommand(formatCmd)

	formatCmd.Flags().String("from", "", "reference instant (default now)")
	formatCmd.Flags().String("style", "short", "output style (compact, short, long, longer)")
	formatCmd.Flags().String("threshold", "twice", "unit promotion threshold (1, 1.5, 2, once, twice)")
	formatCmd.Flags().String("locale", "", "BCP 47 locale (default from LC_ALL, LC_MESSAGES or LANG)")
	formatCmd.Flags().String("tz", "", "IANA time zone for the date and clock")
	formatCmd.Flags().Bool("json", false, "print the result with its metadata as JSON")
	formatCmd.Flags().Bool("parts", false, "print the typed parts, one per line")

	// Bind flags to viper
	mustBindPFlag("format.style", formatCmd.Flags().Lookup("style"))
	mustBindPFlag("format.threshold", formatCmd.Flags().Lookup("threshold"))
	mustBindPFlag("format.locale", formatCmd.Flags().Lookup("locale"))
	mustBindPFlag("format.time_zone", formatCmd.Flags().Lookup("tz"))
}

// outputMode selects how runFormat prints.
type outputMode int

const (
	outputText outputMode = iota
	outputJSON
	outputParts
)

func runFormat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := slog.Default()
	f, _, err := newFormatter(cfg, logger)
	if err != nil {
		return err
	}

	opts, err := formatDefaults(cfg)
	if err != nil {
		return err
	}
	from, _ := cmd.Flags().GetString("from")
	if err := resolveInstants(&opts, args[0], from, time.Now()); err != nil {
		return err
	}

	mode := outputText
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		mode = outputJSON
	}
	if asParts, _ := cmd.Flags().GetBool("parts"); asParts {
		mode = outputParts
	}

	return writeFormatted(cmd.OutOrStdout(), f, opts, mode)
}

// resolveInstants parses to and from (either may be relative) into opts.
// An empty from means now.
func resolveInstants(opts *reldate.Options, to, from string, now time.Time) error {
	anchor := now
	if from != "" {
		t, err := duration.ParseInstant(from, now)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		anchor = t
	}
	t, err := duration.ParseInstant(to, anchor)
	if err != nil {
		return err
	}
	opts.From, opts.To = anchor, t
	return nil
}

func writeFormatted(w io.Writer, f *reldate.Formatter, opts reldate.Options, mode outputMode) error {
	switch mode {
	case outputParts:
		parts, err := f.FormatToParts(opts)
		if err != nil {
			return err
		}
		for _, p := range parts {
			if _, err := fmt.Fprintf(w, "%-8s %q\n", p.Type, p.Value); err != nil {
				return err
			}
		}
		return nil
	case outputJSON:
		res, err := f.Format(opts)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	default:
		res, err := f.Format(opts)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, res)
		return err
	}
}
