package report

import (
	"strings"

	"devjournal/journal"
)

// Query filters entries. Empty fields match everything.
type Query struct {
	Text      string
	Project   string
	Tag       string
	EntryType string
}

func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" &&
		strings.TrimSpace(q.Project) == "" &&
		strings.TrimSpace(q.Tag) == "" &&
		strings.TrimSpace(q.EntryType) == ""
}

// Search keeps entries matching every non-empty field of q. Text is a
// case-insensitive substring match over the free-text fields, tags and links.
func Search(entries []journal.Entry, q Query) []journal.Entry {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	project := strings.TrimSpace(q.Project)
	entryType := strings.TrimSpace(q.EntryType)
	tag := strings.TrimSpace(q.Tag)

	matches := make([]journal.Entry, 0, len(entries))
	for _, entry := range entries {
		if project != "" && !strings.EqualFold(entry.Project, project) {
			continue
		}
		if entryType != "" && !strings.EqualFold(entry.EntryType, entryType) {
			continue
		}
		if tag != "" && !entry.HasTag(tag) {
			continue
		}
		if text != "" && !strings.Contains(searchableText(entry), text) {
			continue
		}
		matches = append(matches, entry)
	}
	return matches
}

func searchableText(entry journal.Entry) string {
	parts := []string{
		entry.Project,
		entry.EntryType,
		entry.Description,
		entry.Results,
		entry.Blockers,
		entry.Reflections,
		strings.Join(entry.Tags, " "),
	}
	for _, ref := range entry.Issues {
		parts = append(parts, ref.Key, ref.Summary)
	}
	for _, link := range entry.Links {
		parts = append(parts, link.Text, link.URL)
	}
	return strings.ToLower(strings.Join(parts, "\n"))
}
