package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"devjournal/config"
	"devjournal/internal/timeutil"
	"devjournal/issues"
	"devjournal/report"
	"devjournal/storage"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openJournal(cfg *config.Config) (*storage.FileStore, error) {
	return storage.NewFileStore(cfg.Journal.Dir, cfg.Issues.BaseURL)
}

func openCatalog(cfg *config.Config) (*storage.Catalog, error) {
	path := cfg.CatalogFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	return storage.OpenCatalog(path)
}

func issueClientConfig(cfg *config.Config) issues.ClientConfig {
	return issues.ClientConfig{
		BaseURL:  cfg.Issues.BaseURL,
		Email:    cfg.Issues.Email,
		APIToken: cfg.Issues.APIToken,
	}
}

func newIssueService(cfg *config.Config) (*issues.Service, error) {
	clientCfg := issueClientConfig(cfg)
	if !clientCfg.Configured() {
		fmt.Fprintln(os.Stderr, "Issue tracker credentials missing, using demonstration tickets.")
	}
	client, err := issues.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create issue client: %w", err)
	}
	return issues.NewService(client), nil
}

// reportColors reads catalog colors. A catalog failure only costs the colors.
func reportColors(cfg *config.Config) report.Colors {
	catalog, err := openCatalog(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: catalog unavailable, using default colors:", err)
		return report.Colors{}
	}
	defer catalog.Close()

	projects, err := catalog.Colors(storage.KindProject)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: reading project colors failed:", err)
	}
	tags, err := catalog.Colors(storage.KindTag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: reading tag colors failed:", err)
	}
	return report.Colors{Projects: projects, Tags: tags}
}

// resolveDateValue accepts YYYY-MM-DD, "today" and "yesterday". Empty means today.
func resolveDateValue(value string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return timeutil.DayKey(now), nil
	case "yesterday":
		return timeutil.DayKey(now.AddDate(0, 0, -1)), nil
	}
	value = strings.TrimSpace(value)
	if err := timeutil.ValidateDateKey(value); err != nil {
		return "", err
	}
	return value, nil
}

// resolveRangeValues turns --from/--to/--month flags into an inclusive date range.
// Without any flag the current month is used.
func resolveRangeValues(from, to, month string, now time.Time) (string, string, error) {
	month = strings.TrimSpace(month)
	if month != "" {
		if strings.TrimSpace(from) != "" || strings.TrimSpace(to) != "" {
			return "", "", fmt.Errorf("--month cannot be combined with --from/--to")
		}
		first, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			return "", "", fmt.Errorf("invalid month %q: expected YYYY-MM", month)
		}
		start, end := timeutil.MonthRange(first)
		return start, end, nil
	}

	monthStart, monthEnd := timeutil.MonthRange(now)
	start := monthStart
	end := monthEnd
	var err error
	if strings.TrimSpace(from) != "" {
		if start, err = resolveDateValue(from, now); err != nil {
			return "", "", fmt.Errorf("--from: %w", err)
		}
	}
	if strings.TrimSpace(to) != "" {
		if end, err = resolveDateValue(to, now); err != nil {
			return "", "", fmt.Errorf("--to: %w", err)
		}
	}
	return start, end, nil
}
