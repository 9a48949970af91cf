/*
Copyright © 2025 riad@rsworld.eu

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"devjournal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "devjournal",
	Short: "Keep a daily activity journal in markdown and report on it.",
	Long: `
**********************************************
*               DEV JOURNAL                  *
**********************************************

This CLI records work sessions as entries in one markdown file per day
({YYYY-MM-DD}.md), edits and deletes them by position, searches them, and
aggregates a date range into an activity report by day, month, project, tag
and activity type.

Projects and tags are kept in a local SQLite catalog that provides report colors.
Issue references can be resolved against a Jira instance.
`,
	Example: `
  # Create configuration file
  devjournal config create

  # Log a session for today
  devjournal add --project Mandate --description "Fixed PDF export" --duration 1h30 --tag bug

  # List days with entries and show one of them
  devjournal dates
  devjournal show 2026-03-05

  # Report on the current month
  devjournal report

  # Export a report for a range to Excel
  devjournal export --mode report --from 2026-01-01 --to 2026-03-31 --output ./q1.xlsx
`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.devjournal.yaml, then ./.devjournal.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".devjournal" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".devjournal")
	}

	viper.AutomaticEnv() // read in environment variables that match
	if err := config.BindEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found, using defaults. Create one with: devjournal config create")
	}
}
