package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write a starter configuration for the journal.",
	Long: `Write the example configuration ($HOME/.devjournal.yaml, or --configFile).

The template points journal.dir at $HOME/Documents/DevJournal, keeps the
catalog next to the date files and leaves the issue tracker credentials empty.
An existing file is never overwritten.`,
	Example: `
  # Create default config at $HOME/.devjournal.yaml
  devjournal config create

  # Keep a separate journal for a side project
  devjournal --configFile ./side-journal.yaml config create
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveDefaultConfig()
	},
}

func saveDefaultConfig() error {
	configPath, err := resolveConfigEditPath(cfgFile, viper.ConfigFileUsed())
	if err != nil {
		return err
	}

	created, err := ensureConfigFileWithTemplate(configPath)
	if err != nil {
		return err
	}
	if !created {
		fmt.Printf("Config file already exists at: %s\n", configPath)
		return nil
	}

	cfg, err := validateConfigFile(configPath)
	if err != nil {
		return err
	}
	fmt.Printf("New config file created at: %s\n", configPath)
	fmt.Printf("Journal entries will be written to: %s\n", cfg.Journal.Dir)
	fmt.Println("Log a first entry with: devjournal add --project <name> --description <text> --duration 1h")
	return nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)
}
