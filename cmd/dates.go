package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var datesLimit int

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "List dates that have a journal file, newest first",
	Example: `
  # List every journal date
  devjournal dates

  # Only the 10 most recent
  devjournal dates --limit 10
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openJournal(cfg)
		if err != nil {
			return err
		}

		dates, err := store.ListDates()
		if err != nil {
			return err
		}
		if datesLimit > 0 && len(dates) > datesLimit {
			dates = dates[:datesLimit]
		}
		if len(dates) == 0 {
			fmt.Printf("No journal files in %s\n", store.Dir())
			return nil
		}
		for _, date := range dates {
			fmt.Println(date)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datesCmd)

	datesCmd.Flags().IntVarP(&datesLimit, "limit", "n", 0, "Maximum number of dates to print (0 = all)")
}
