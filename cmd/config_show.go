package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devjournal/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.
The API token is never printed.`,
	Example: `
  # Show active configuration
  devjournal config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		source := viper.ConfigFileUsed()
		if source == "" {
			source = "(defaults)"
		}
		fmt.Println("Config file loaded from:", source)
		fmt.Println("Configuration:")
		fmt.Printf("journal.dir: %s\n", cfg.Journal.Dir)
		fmt.Printf("catalog.path: %s\n", cfg.CatalogFile())
		fmt.Printf("issues.base_url: %s\n", cfg.Issues.BaseURL)
		fmt.Printf("issues.email: %s\n", cfg.Issues.Email)
		fmt.Printf("issues.api_token: %s\n", maskSecret(cfg.Issues.APIToken))
		fmt.Printf("issues.default_query: %s\n", cfg.Issues.DefaultQuery)
		fmt.Printf("report.workers: %d\n", cfg.Report.Workers)
		return nil
	},
}

func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	return "********"
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
