package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"devjournal/report"
)

var (
	searchFrom    string
	searchTo      string
	searchMonth   string
	searchProject string
	searchTag     string
	searchType    string
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find entries in a date range",
	Long: `Search entries between --from and --to (default current month).

Text matches case-insensitively anywhere in the description, results,
blockers, reflections, tags, issues and links. --project, --tag and --type
must match exactly (case-insensitive).`,
	Example: `
  # Everything mentioning "pdf" this month
  devjournal search pdf

  # Bug-tagged Mandate entries of the first quarter
  devjournal search --project Mandate --tag bug --from 2026-01-01 --to 2026-03-31
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := report.Query{
			Project:   searchProject,
			Tag:       searchTag,
			EntryType: searchType,
		}
		if len(args) == 1 {
			query.Text = args[0]
		}
		if query.IsEmpty() {
			return fmt.Errorf("nothing to search: pass a text or --project/--tag/--type")
		}

		start, end, err := resolveRangeValues(searchFrom, searchTo, searchMonth, time.Now())
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		entries, err := collectRange(cmd.Context(), cfg, start, end)
		if err != nil {
			return err
		}

		matches := report.Search(entries, query)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d matching entries between %s and %s\n", len(matches), start, end)
		for i, entry := range matches {
			fmt.Fprintln(out)
			printEntry(out, i+1, entry)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchFrom, "from", "", "First date YYYY-MM-DD (default first day of current month)")
	searchCmd.Flags().StringVar(&searchTo, "to", "", "Last date YYYY-MM-DD (default last day of current month)")
	searchCmd.Flags().StringVar(&searchMonth, "month", "", "Search one month YYYY-MM")
	searchCmd.Flags().StringVarP(&searchProject, "project", "p", "", "Only entries of this project")
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "Only entries carrying this tag")
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "Only entries of this activity type")
}
