package issues

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	searchPath        = "/rest/api/3/search/jql"
	defaultMaxResults = 50
)

// Ticket is one issue returned by a tracker search.
type Ticket struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	IssueType string `json:"issue_type"`
}

// Client searches the issue tracker with a JQL query.
type Client interface {
	Search(ctx context.Context, jql string) ([]Ticket, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL    string
	Email      string
	APIToken   string
	MaxResults int
	HTTPClient httpDoer
}

// Configured reports whether every credential needed for real requests is set.
func (c ClientConfig) Configured() bool {
	return strings.TrimSpace(c.BaseURL) != "" &&
		strings.TrimSpace(c.Email) != "" &&
		strings.TrimSpace(c.APIToken) != ""
}

type HTTPClient struct {
	baseURL    string
	email      string
	apiToken   string
	maxResults int
	httpClient httpDoer
}

func NewHTTPClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}
	if strings.TrimSpace(cfg.Email) == "" || strings.TrimSpace(cfg.APIToken) == "" {
		return nil, errors.New("email and API token are required")
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}

	return &HTTPClient{
		baseURL:    baseURL,
		email:      strings.TrimSpace(cfg.Email),
		apiToken:   strings.TrimSpace(cfg.APIToken),
		maxResults: maxResults,
		httpClient: doer,
	}, nil
}

// NewClient returns an HTTP client when credentials are complete and the
// static demonstration client otherwise.
func NewClient(cfg ClientConfig) (Client, error) {
	if !cfg.Configured() {
		return StaticClient{}, nil
	}
	return NewHTTPClient(cfg)
}

type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

type searchResponse struct {
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string `json:"summary"`
			Status  struct {
				Name string `json:"name"`
			} `json:"status"`
			IssueType struct {
				Name string `json:"name"`
			} `json:"issuetype"`
		} `json:"fields"`
	} `json:"issues"`
}

func (c *HTTPClient) Search(ctx context.Context, jql string) ([]Ticket, error) {
	body := searchRequest{
		JQL:        jql,
		MaxResults: c.maxResults,
		Fields:     []string{"summary", "status", "issuetype"},
	}

	var out searchResponse
	if err := c.doJSON(ctx, http.MethodPost, searchPath, body, &out); err != nil {
		return nil, err
	}

	tickets := make([]Ticket, 0, len(out.Issues))
	for _, issue := range out.Issues {
		tickets = append(tickets, Ticket{
			Key:       issue.Key,
			Summary:   issue.Fields.Summary,
			Status:    issue.Fields.Status.Name,
			IssueType: issue.Fields.IssueType.Name,
		})
	}
	return tickets, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpointPath string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpointPath, bodyReader)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, endpointPath, err)
	}

	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, endpointPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"request %s %s failed with status %d: %s",
			method,
			endpointPath,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response %s %s: %w", method, endpointPath, err)
	}
	return nil
}

// StaticClient answers every search with fixed demonstration tickets. It is
// used when no tracker credentials are configured.
type StaticClient struct{}

func (StaticClient) Search(ctx context.Context, _ string) ([]Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []Ticket{
		{Key: "MOCK-1", Summary: "Demonstration ticket 1", Status: "In Progress", IssueType: "Task"},
		{Key: "MOCK-2", Summary: "Demonstration ticket 2", Status: "To Do", IssueType: "Bug"},
	}, nil
}
