package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"devjournal/internal/duration"
	"devjournal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print day totals whenever a date file changes",
	Long: `Watch the journal directory and print the entry count and hours of a day
each time its file is written, including edits made outside devjournal.

Stop with Ctrl+C.`,
	Example: `
  # Follow changes while editing the journal in another editor
  devjournal watch
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

		watcher, err := storage.NewWatcher(store.Dir())
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := watcher.Start(); err != nil {
			return fmt.Errorf("watch %s: %w", store.Dir(), err)
		}
		defer watcher.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", store.Dir())
		return followChanges(ctx, store, watcher.Changes, out)
	},
}

func followChanges(ctx context.Context, store *storage.FileStore, changes <-chan storage.DateChange, out io.Writer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if change.Removed {
				fmt.Fprintf(out, "%s removed\n", change.Date)
				continue
			}
			entries, err := store.Entries(change.Date)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: reading %s failed: %v\n", change.Date, err)
				continue
			}
			var hours float64
			for _, entry := range entries {
				hours += duration.Hours(entry.Duration)
			}
			fmt.Fprintf(out, "%s: %d entries, %.2fh\n", change.Date, len(entries), hours)
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
