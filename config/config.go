package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	KeyJournalDir         = "journal.dir"
	KeyCatalogPath        = "catalog.path"
	KeyIssuesBaseURL      = "issues.base_url"
	KeyIssuesEmail        = "issues.email"
	KeyIssuesAPIToken     = "issues.api_token"
	KeyIssuesDefaultQuery = "issues.default_query"
	KeyReportWorkers      = "report.workers"

	DefaultIssueQuery = "assignee = currentUser() ORDER BY updated DESC"
	catalogFileName   = ".catalog.db"
)

// Environment variables bound to the issue tracker keys.
var issueEnvBindings = map[string]string{
	KeyIssuesBaseURL:  "JIRA_BASE_URL",
	KeyIssuesEmail:    "JIRA_EMAIL",
	KeyIssuesAPIToken: "JIRA_API_TOKEN",
}

type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Issues  IssuesConfig  `mapstructure:"issues"`
	Report  ReportConfig  `mapstructure:"report"`
}

type JournalConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type IssuesConfig struct {
	BaseURL      string `mapstructure:"base_url" validate:"omitempty,url"`
	Email        string `mapstructure:"email" validate:"omitempty,email"`
	APIToken     string `mapstructure:"api_token"`
	DefaultQuery string `mapstructure:"default_query"`
}

type ReportConfig struct {
	Workers int `mapstructure:"workers" validate:"min=1,max=64"`
}

// CatalogFile returns the configured catalog path, defaulting to a file inside the journal directory.
func (c *Config) CatalogFile() string {
	if path := strings.TrimSpace(c.Catalog.Path); path != "" {
		return path
	}
	return filepath.Join(c.Journal.Dir, catalogFileName)
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// BindEnv maps the issue tracker environment variables onto their keys.
func BindEnv() error {
	return bindEnv(viper.GetViper())
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	}
	return nil
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return fmt.Sprintf(`# devjournal configuration
journal:
  dir: %q

# catalog:
#   path: "/path/to/catalog.db"

# Issue tracker credentials can also come from JIRA_BASE_URL, JIRA_EMAIL
# and JIRA_API_TOKEN (a .env file in the working directory is read too).
issues:
  base_url: ""
  email: ""
  api_token: ""
  default_query: %q

report:
  workers: 4
`, defaultJournalDir(), DefaultIssueQuery)
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Journal.Dir = expandHome(strings.TrimSpace(cfg.Journal.Dir))
	cfg.Catalog.Path = expandHome(strings.TrimSpace(cfg.Catalog.Path))
	cfg.Issues.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Issues.BaseURL), "/")
	if strings.TrimSpace(cfg.Issues.DefaultQuery) == "" {
		cfg.Issues.DefaultQuery = DefaultIssueQuery
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyJournalDir, defaultJournalDir())
	v.SetDefault(KeyCatalogPath, "")
	v.SetDefault(KeyIssuesBaseURL, "")
	v.SetDefault(KeyIssuesEmail, "")
	v.SetDefault(KeyIssuesAPIToken, "")
	v.SetDefault(KeyIssuesDefaultQuery, DefaultIssueQuery)
	v.SetDefault(KeyReportWorkers, 4)
}

func bindEnv(v *viper.Viper) error {
	for key, env := range issueEnvBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", env, key, err)
		}
	}
	return nil
}

func defaultJournalDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", "DevJournal")
	}
	return filepath.Join(home, "Documents", "DevJournal")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
