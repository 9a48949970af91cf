package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage devjournal configuration file values.",
	Long: `Create, edit, display, and delete the devjournal configuration file.

The configuration stores application-wide values:
- journal.dir (directory holding one markdown file per day)
- catalog.path (SQLite catalog of projects and tags)
- issues.base_url / issues.email / issues.api_token / issues.default_query
- report.workers`,
	Example: `
  # Create default config in $HOME/.devjournal.yaml
  devjournal config create

  # Show active config and source file
  devjournal config show

  # Open active config in editor (creates example if missing)
  devjournal config edit

  # Delete active config file
  devjournal config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
