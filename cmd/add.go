package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"devjournal/config"
	"devjournal/journal"
	"devjournal/storage"
)

var (
	addDate  string
	addFlags entryFlags
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Append an entry to a date file",
	Long: `Append one entry to the journal file of a date ({journal.dir}/YYYY-MM-DD.md).

The entry is stamped with the current local time. The date file is created
when missing, otherwise the entry is appended after a "---" separator.

Duration accepts "1h30", "1.5h", "90min", "45 minutes" and bare numbers
(below 10 is hours, otherwise minutes).`,
	Example: `
  # Log a session for today
  devjournal add --project Mandate --description "Fixed PDF export" --duration 1h30 --tag bug --tag release

  # Log yesterday's meeting with an issue and a link
  devjournal add --date yesterday --project Claims --type réunion --duration 45min \
    --issue ABC-123 --link "minutes=https://wiki.example.com/minutes"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateValue(addDate, time.Now())
		if err != nil {
			return err
		}

		entry := journal.NewEntry()
		if err := addFlags.apply(&entry, cmd.Flags().Changed); err != nil {
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

		warnUnknownCatalogNames(cfg, entry)

		saved, err := store.Save(date, entry)
		if err != nil {
			return err
		}
		fmt.Printf("Entry saved. Date: %s, Timestamp: %s, File: %s\n", date, saved.Timestamp, store.Path(date))
		return nil
	},
}

// warnUnknownCatalogNames reports projects and tags missing from the catalog.
// The entry is written regardless.
func warnUnknownCatalogNames(cfg *config.Config, entry journal.Entry) {
	catalog, err := openCatalog(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: catalog unavailable:", err)
		return
	}
	defer catalog.Close()

	if _, found, err := catalog.Get(storage.KindProject, entry.Project); err == nil && !found {
		fmt.Fprintf(os.Stderr, "Warning: project %q is not in the catalog (add it with: devjournal project add %q)\n", entry.Project, entry.Project)
	}
	for _, tag := range entry.Tags {
		if _, found, err := catalog.Get(storage.KindTag, tag); err == nil && !found {
			fmt.Fprintf(os.Stderr, "Warning: tag %q is not in the catalog\n", tag)
		}
	}
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDate, "date", "", "Date YYYY-MM-DD, today or yesterday (default today)")
	addFlags.register(addCmd)
	_ = addCmd.MarkFlagRequired("project")
}
