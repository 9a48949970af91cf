package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var deleteYes bool

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete <date> <position>",
	Short: "Delete one entry from a date file",
	Long: `Remove the entry at a 1-based position in a date file.

The remaining entries are rewritten in order. When the last entry goes, the
file stays on disk with empty content.
Before deletion, an interactive prompt requires typing exactly "Y" unless --yes is set.`,
	Example: `
  # Delete the third entry of a day
  devjournal delete 2026-03-05 3

  # Without prompt
  devjournal delete today 1 --yes
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

		if !deleteYes {
			printEntry(deletePromptOutput, index+1, entries[index])
			confirmed, err := confirmPrompt(deletePromptInput, deletePromptOutput, fmt.Sprintf("Delete entry %d of %s?", index+1, date))
			if err != nil {
				return err
			}
			if !confirmed {
				return fmt.Errorf("delete aborted: confirmation was not 'Y'")
			}
		}

		deleted, err := store.Delete(date, index)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("entry %d not found on %s", index+1, date)
		}
		fmt.Printf("Deleted entry %d of %s\n", index+1, date)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip confirmation prompt")
}
