package issues

import (
	"context"
	"fmt"
	"sync"

	"devjournal/journal"
)

const (
	pingQuery = "ORDER BY created DESC"

	missingSummary = "not found in the current query"
	missingStatus  = "Unknown"
)

// Choice is one ticket offered for an entry.
type Choice struct {
	Key       string `json:"key"`
	Summary   string `json:"summary"`
	Status    string `json:"status"`
	Selected  bool   `json:"is_selected"`
	Available bool   `json:"is_available"`
}

// Service owns the tracker client and the tickets of the last search.
// State is copied out under the lock and network calls run without it.
type Service struct {
	mu      sync.RWMutex
	client  Client
	tickets []Ticket
	byKey   map[string]Ticket
}

func NewService(client Client) *Service {
	if client == nil {
		client = StaticClient{}
	}
	return &Service{
		client: client,
		byKey:  map[string]Ticket{},
	}
}

// SetClient swaps the client. Cached tickets are kept until the next Refresh.
func (s *Service) SetClient(client Client) {
	if client == nil {
		client = StaticClient{}
	}
	s.mu.Lock()
	s.client = client
	s.mu.Unlock()
}

func (s *Service) currentClient() Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Refresh runs jql and replaces the cached tickets with the result.
func (s *Service) Refresh(ctx context.Context, jql string) ([]Ticket, error) {
	client := s.currentClient()

	tickets, err := client.Search(ctx, jql)
	if err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	byKey := make(map[string]Ticket, len(tickets))
	for _, ticket := range tickets {
		byKey[ticket.Key] = ticket
	}

	s.mu.Lock()
	s.tickets = append([]Ticket(nil), tickets...)
	s.byKey = byKey
	s.mu.Unlock()

	return append([]Ticket(nil), tickets...), nil
}

// Ping runs a cheap search and returns how many tickets came back.
// The cache is left alone.
func (s *Service) Ping(ctx context.Context) (int, error) {
	tickets, err := s.currentClient().Search(ctx, pingQuery)
	if err != nil {
		return 0, fmt.Errorf("test issue tracker connection: %w", err)
	}
	return len(tickets), nil
}

func (s *Service) Tickets() []Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Ticket(nil), s.tickets...)
}

func (s *Service) Summary(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.byKey[key]
	return ticket.Summary, ok
}

// ChoicesFor lists the cached tickets, marking those in selected, followed by
// selected keys the last search did not return.
func (s *Service) ChoicesFor(selected []string) []Choice {
	tickets := s.Tickets()

	isSelected := make(map[string]bool, len(selected))
	for _, key := range selected {
		isSelected[key] = true
	}

	choices := make([]Choice, 0, len(tickets)+len(selected))
	known := make(map[string]bool, len(tickets))
	for _, ticket := range tickets {
		known[ticket.Key] = true
		choices = append(choices, Choice{
			Key:       ticket.Key,
			Summary:   ticket.Summary,
			Status:    ticket.Status,
			Selected:  isSelected[ticket.Key],
			Available: true,
		})
	}
	for _, key := range selected {
		if known[key] {
			continue
		}
		known[key] = true
		choices = append(choices, Choice{
			Key:      key,
			Summary:  missingSummary,
			Status:   missingStatus,
			Selected: true,
		})
	}
	return choices
}

// Annotate returns copies of entries with issue summaries filled from the cache.
func (s *Service) Annotate(entries []journal.Entry) []journal.Entry {
	out := make([]journal.Entry, len(entries))
	for i, entry := range entries {
		if len(entry.Issues) > 0 {
			issues := make([]journal.IssueRef, len(entry.Issues))
			for j, ref := range entry.Issues {
				if summary, ok := s.Summary(ref.Key); ok {
					ref.Summary = summary
				}
				issues[j] = ref
			}
			entry.Issues = issues
		}
		out[i] = entry
	}
	return out
}
