package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"devjournal/config"
	"devjournal/journal"
	"devjournal/report"
)

var (
	reportFrom    string
	reportTo      string
	reportMonth   string
	reportJSON    bool
	reportTimeout time.Duration
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate entries of a date range",
	Long: `Aggregate every entry between --from and --to (inclusive) into totals by
project, tag, activity type, day and month.

Without range flags the current month is reported. Date files that cannot be
read are skipped and listed on stderr. Durations that cannot be read count as
zero hours.`,
	Example: `
  # Current month
  devjournal report

  # A given month
  devjournal report --month 2026-02

  # A range, as JSON
  devjournal report --from 2026-01-01 --to 2026-03-31 --json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := resolveRangeValues(reportFrom, reportTo, reportMonth, time.Now())
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		r, err := runReport(cmd.Context(), cfg, start, end, reportTimeout)
		if err != nil {
			return err
		}

		if reportJSON {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(r)
		}
		printReport(cmd.OutOrStdout(), r)
		return nil
	},
}

func runReport(ctx context.Context, cfg *config.Config, start, end string, timeout time.Duration) (*report.ActivityReport, error) {
	store, err := openJournal(cfg)
	if err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r, err := report.Run(ctx, store, start, end, report.Options{
		Workers: cfg.Report.Workers,
		Colors:  reportColors(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("build report: %w", err)
	}
	if len(r.SkippedDates) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped unreadable dates: %s\n", strings.Join(r.SkippedDates, ", "))
	}
	return r, nil
}

// collectRange loads the entries of [start, end] in date order.
func collectRange(ctx context.Context, cfg *config.Config, start, end string) ([]journal.Entry, error) {
	store, err := openJournal(cfg)
	if err != nil {
		return nil, err
	}
	entries, skipped, err := report.Collect(ctx, store, start, end, cfg.Report.Workers)
	if err != nil {
		return nil, fmt.Errorf("collect entries: %w", err)
	}
	if len(skipped) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped unreadable dates: %s\n", strings.Join(skipped, ", "))
	}
	return entries, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFrom, "from", "", "First date YYYY-MM-DD (default first day of current month)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "Last date YYYY-MM-DD (default last day of current month)")
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "Report one month YYYY-MM")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the report as JSON")
	reportCmd.Flags().DurationVar(&reportTimeout, "timeout", 0, "Abort the aggregation after this duration (0 = no limit)")
}
