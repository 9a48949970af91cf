package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configDeleteYes bool

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by devjournal.

If no configuration file is active, the command returns an error.
The journal directory and the catalog are left untouched.`,
	Example: `
  # Delete active config
  devjournal config delete

  # Delete config at a custom path without prompting
  devjournal --configFile ./custom-devjournal.yaml config delete --yes
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := viper.ConfigFileUsed()
		if configPath == "" {
			return fmt.Errorf("no configuration file found")
		}

		if !configDeleteYes {
			confirmed, err := confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete configuration file %s?", configPath))
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("error deleting configuration file: %w", err)
		}

		fmt.Printf("Configuration file successfully deleted: %s\n", configPath)
		return nil
	},
}

func init() {
	configDeleteCmd.Flags().BoolVarP(&configDeleteYes, "yes", "y", false, "Skip confirmation prompt")
	configCmd.AddCommand(configDeleteCmd)
}
