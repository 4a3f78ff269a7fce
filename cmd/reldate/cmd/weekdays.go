package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/reldate/internal/observability"
	"github.com/jmylchreest/reldate/pkg/weekday"
)

var weekdaysCmd = &cobra.Command{
	Use:   "weekdays",
	Short: "Custom weekday abbreviation commands",
	Long: `Commands for the weekday abbreviations used by the short style in
locales whose standard abbreviations are too long or ambiguous.`,
}

var weekdaysVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that every locale's abbreviations are distinct",
	Long: `Print rune-length statistics per locale and fail when two days of a
locale share an abbreviation.`,
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		logger := observability.WithComponent(slog.Default(), "weekday")
		done := observability.TimedOperationWithError(cmd.Context(), logger, "verify_weekdays", &err)
		defer done()

		err = verifyWeekdays(cmd.Context(), cmd.OutOrStdout(), logger)
		return err
	},
}

func init() {
	rootCmd.AddCommand(weekdaysCmd)
	weekdaysCmd.AddCommand(weekdaysVerifyCmd)
}

func verifyWeekdays(ctx context.Context, w io.Writer, logger *slog.Logger) error {
	var failed []string
	for _, r := range weekday.Verify() {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
		if !r.Distinct() {
			logger.WarnContext(ctx, "duplicate weekday abbreviations",
				slog.String("locale", r.Locale),
				slog.Any("duplicates", r.Duplicates),
			)
			failed = append(failed, r.Locale)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("duplicate abbreviations in %s", strings.Join(failed, ", "))
	}
	return nil
}
