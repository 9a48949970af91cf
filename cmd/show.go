package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	showRaw     bool
	showResolve bool
)

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show the entries of one date",
	Long: `Print the entries of a date file with their positions.

Positions are 1-based and are the values "edit" and "delete" expect.
With --resolve, issue keys are looked up in the issue tracker and printed
with their summary.`,
	Example: `
  # Today's entries
  devjournal show

  # A specific date, with issue summaries
  devjournal show 2026-03-05 --resolve

  # The file as stored on disk
  devjournal show 2026-03-05 --raw
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dateArg string
		if len(args) == 1 {
			dateArg = args[0]
		}
		date, err := resolveDateValue(dateArg, time.Now())
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openJournal(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if showRaw {
			content, err := store.Load(date)
			if err != nil {
				return err
			}
			fmt.Fprint(out, content)
			return nil
		}

		entries, err := store.Entries(date)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "No entries for %s\n", date)
			return nil
		}

		if showResolve {
			service, err := newIssueService(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if _, err := service.Refresh(ctx, cfg.Issues.DefaultQuery); err != nil {
				fmt.Fprintln(os.Stderr, "Warning: issue lookup failed:", err)
			}
			entries = service.Annotate(entries)
		}

		fmt.Fprintf(out, "%s (%d entries)\n", date, len(entries))
		for i, entry := range entries {
			fmt.Fprintln(out)
			printEntry(out, i+1, entry)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showRaw, "raw", false, "Print the file content unchanged")
	showCmd.Flags().BoolVar(&showResolve, "resolve", false, "Resolve issue summaries through the issue tracker")
}
