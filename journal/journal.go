package journal

import (
	"regexp"
	"strings"
)

const (
	DefaultEntryType = "développement"
	DefaultDuration  = "0"
)

var issueKeyPattern = regexp.MustCompile(`^[A-Z]+-\d+$`)

// Entry is one logged work session inside a date file.
// Entries have no identity beyond their position in the file.
type Entry struct {
	Timestamp   string     `json:"timestamp"`
	Project     string     `json:"project"`
	EntryType   string     `json:"entry_type"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	TimeRange   string     `json:"time_range,omitempty"`
	Results     string     `json:"results,omitempty"`
	Blockers    string     `json:"blockers,omitempty"`
	Reflections string     `json:"reflections,omitempty"`
	Tags        []string   `json:"tags"`
	Links       []Link     `json:"links,omitempty"`
	Issues      []IssueRef `json:"issues,omitempty"`
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// IssueRef references a tracker issue. Summary is display-only and never persisted.
type IssueRef struct {
	Key     string `json:"key"`
	Summary string `json:"summary,omitempty"`
}

// NewEntry returns an entry carrying the field defaults.
func NewEntry() Entry {
	return Entry{
		EntryType: DefaultEntryType,
		Duration:  DefaultDuration,
	}
}

// NormalizeTags strips one leading '#', trims, and drops empty and duplicate tags
// keeping the first occurrence.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		tag := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
		if tag == "" {
			continue
		}
		if _, exists := seen[tag]; exists {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e Entry) HasTag(tag string) bool {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	for _, candidate := range e.Tags {
		if strings.EqualFold(candidate, tag) {
			return true
		}
	}
	return false
}

// IssueKeys returns the keys of the entry's issue references in order.
func (e Entry) IssueKeys() []string {
	keys := make([]string, 0, len(e.Issues))
	for _, ref := range e.Issues {
		keys = append(keys, ref.Key)
	}
	return keys
}

func IsIssueKey(value string) bool {
	return issueKeyPattern.MatchString(value)
}

// CleanLinks drops links with an empty text or URL.
func CleanLinks(links []Link) []Link {
	if len(links) == 0 {
		return nil
	}
	out := make([]Link, 0, len(links))
	for _, link := range links {
		text := strings.TrimSpace(link.Text)
		url := strings.TrimSpace(link.URL)
		if text == "" || url == "" {
			continue
		}
		out = append(out, Link{Text: text, URL: url})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
