package cmd

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	issuesSelected []string
	issuesTimeout  time.Duration
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Query the issue tracker.",
	Long: `Search issues and test the tracker connection.

Credentials come from issues.base_url, issues.email and issues.api_token or
from JIRA_BASE_URL, JIRA_EMAIL and JIRA_API_TOKEN. Without credentials two
demonstration tickets are returned.`,
}

var issuesSearchCmd = &cobra.Command{
	Use:   "search [jql]",
	Short: "List issues matching a JQL query",
	Long: `Run a JQL query (default issues.default_query) and list the tickets.

Keys given with --selected are marked; selected keys the query did not return
are listed as unavailable.`,
	Example: `
  # My open issues
  devjournal issues search

  # A custom query, marking the keys of an entry
  devjournal issues search "project = ABC ORDER BY updated DESC" --selected ABC-1,ABC-7
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		service, err := newIssueService(cfg)
		if err != nil {
			return err
		}

		jql := cfg.Issues.DefaultQuery
		if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
			jql = args[0]
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), issuesTimeout)
		defer cancel()
		if _, err := service.Refresh(ctx, jql); err != nil {
			return err
		}

		selected := parseIssueFlags(issuesSelected)
		keys := make([]string, 0, len(selected))
		for _, ref := range selected {
			keys = append(keys, ref.Key)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "\tKEY\tSTATUS\tSUMMARY")
		for _, choice := range service.ChoicesFor(keys) {
			mark := " "
			switch {
			case choice.Selected && !choice.Available:
				mark = "!"
			case choice.Selected:
				mark = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", mark, choice.Key, choice.Status, choice.Summary)
		}
		return w.Flush()
	},
}

var issuesTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test the issue tracker connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		service, err := newIssueService(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), issuesTimeout)
		defer cancel()
		count, err := service.Ping(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Connection OK. Tickets returned: %d\n", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(issuesCmd)
	issuesCmd.AddCommand(issuesSearchCmd, issuesTestCmd)

	issuesCmd.PersistentFlags().DurationVar(&issuesTimeout, "timeout", 30*time.Second, "Request timeout")
	issuesSearchCmd.Flags().StringSliceVar(&issuesSelected, "selected", nil, "Issue keys to mark as selected")
}
