package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var editFlags entryFlags

var editCmd = &cobra.Command{
	Use:   "edit <date> <position>",
	Short: "Change fields of one entry",
	Long: `Replace fields of the entry at a 1-based position in a date file.

Only the flags given on the command line change; every other field and the
original timestamp are kept. The whole date file is rewritten.`,
	Example: `
  # Fix the duration of the second entry of a day
  devjournal edit 2026-03-05 2 --duration 2h

  # Replace the tags of today's first entry
  devjournal edit today 1 --tag bug,hotfix
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDateValue(args[0], time.Now())
		if err != nil {
			return err
		}
		index, err := parsePosition(args[1])
		if err != nil {
			return err
		}
		if !anyEntryFlagChanged(cmd.Flags().Changed) {
			return fmt.Errorf("nothing to change: pass at least one field flag")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openJournal(cfg)
		if err != nil {
			return err
		}

		entries, err := store.Entries(date)
		if err != nil {
			return err
		}
		if index >= len(entries) {
			return fmt.Errorf("entry %d not found on %s (%d entries)", index+1, date, len(entries))
		}

		entry := entries[index]
		if err := editFlags.apply(&entry, cmd.Flags().Changed); err != nil {
			return err
		}

		updated, err := store.Update(date, index, entry)
		if err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("entry %d not found on %s", index+1, date)
		}
		fmt.Printf("Entry %d updated. Date: %s, File: %s\n", index+1, date, store.Path(date))
		return nil
	},
}

// parsePosition converts a 1-based position argument to an index.
func parsePosition(value string) (int, error) {
	position, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || position < 1 {
		return 0, fmt.Errorf("invalid position %q: expected a number starting at 1", value)
	}
	return position - 1, nil
}

func init() {
	rootCmd.AddCommand(editCmd)

	editFlags.register(editCmd)
}
