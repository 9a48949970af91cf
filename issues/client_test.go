package issues

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type fakeDoer struct {
	fn func(*http.Request) (*http.Response, error)
}

func (f fakeDoer) Do(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

func jsonResponse(status int, payload any) *http.Response {
	body, _ := json.Marshal(payload)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(string(body))),
		Header:     make(http.Header),
	}
}

func TestHTTPClientSearch(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		if r.Method != http.MethodPost || r.URL.Path != "/rest/api/3/search/jql" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "me@example.com" || pass != "secret" {
			t.Fatalf("unexpected basic auth %q/%q (%v)", user, pass, ok)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Fatalf("unexpected Accept header %q", r.Header.Get("Accept"))
		}

		var body searchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.JQL != "project = ABC" || body.MaxResults != 50 {
			t.Fatalf("unexpected body: %+v", body)
		}
		if strings.Join(body.Fields, ",") != "summary,status,issuetype" {
			t.Fatalf("unexpected fields: %v", body.Fields)
		}

		return jsonResponse(http.StatusOK, map[string]any{
			"issues": []map[string]any{{
				"key": "ABC-1",
				"fields": map[string]any{
					"summary":   "Fix login",
					"status":    map[string]any{"name": "In Progress"},
					"issuetype": map[string]any{"name": "Bug"},
				},
			}},
		}), nil
	}}

	client, err := NewHTTPClient(ClientConfig{
		BaseURL:    "https://jira.example.com/",
		Email:      "me@example.com",
		APIToken:   "secret",
		HTTPClient: doer,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	tickets, err := client.Search(context.Background(), "project = ABC")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := Ticket{Key: "ABC-1", Summary: "Fix login", Status: "In Progress", IssueType: "Bug"}
	if len(tickets) != 1 || tickets[0] != want {
		t.Fatalf("expected %+v, got %+v", want, tickets)
	}
}

func TestHTTPClientSearch_StatusError(t *testing.T) {
	t.Parallel()

	doer := fakeDoer{fn: func(r *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusUnauthorized,
			Body:       io.NopCloser(strings.NewReader("bad credentials")),
			Header:     make(http.Header),
		}, nil
	}}

	client, err := NewHTTPClient(ClientConfig{
		BaseURL:    "https://jira.example.com",
		Email:      "me@example.com",
		APIToken:   "wrong",
		HTTPClient: doer,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Search(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "status 401") || !strings.Contains(err.Error(), "bad credentials") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestNewHTTPClient_Validates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ClientConfig
	}{
		{name: "missing base", cfg: ClientConfig{Email: "a@b.c", APIToken: "t"}},
		{name: "relative base", cfg: ClientConfig{BaseURL: "jira.example.com", Email: "a@b.c", APIToken: "t"}},
		{name: "missing token", cfg: ClientConfig{BaseURL: "https://jira.example.com", Email: "a@b.c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewHTTPClient(tc.cfg); err == nil {
				t.Fatalf("expected error for %+v", tc.cfg)
			}
		})
	}
}

func TestNewClient_FallsBackToStatic(t *testing.T) {
	t.Parallel()

	client, err := NewClient(ClientConfig{BaseURL: "https://jira.example.com"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, ok := client.(StaticClient); !ok {
		t.Fatalf("expected StaticClient, got %T", client)
	}

	tickets, err := client.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(tickets) != 2 || tickets[0].Key != "MOCK-1" || tickets[1].Key != "MOCK-2" {
		t.Fatalf("unexpected demonstration tickets: %+v", tickets)
	}
}
