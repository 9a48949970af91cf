package entrytext

import (
	"fmt"
	"strings"

	"devjournal/journal"
)

// Format renders one entry as a markdown block in the fixed field order.
// Issue references are written as links to issueBaseURL/browse/KEY.
func Format(entry journal.Entry, issueBaseURL string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s\n", headingPrefix, singleLine(entry.Timestamp))
	writeField(&b, labelProject, singleLine(entry.Project))
	if value := singleLine(entry.TimeRange); value != "" {
		writeField(&b, labelTimeRange, value)
	}
	writeField(&b, labelEntryType, singleLine(entry.EntryType))
	writeField(&b, labelDescription, entry.Description)
	writeField(&b, labelDuration, singleLine(entry.Duration)+" "+durationSuffix)
	if entry.Results != "" {
		writeField(&b, labelResults, entry.Results)
	}
	if entry.Blockers != "" {
		writeField(&b, labelBlockers, entry.Blockers)
	}
	if links := formatLinks(entry, issueBaseURL); links != "" {
		writeField(&b, labelLinks, links)
	}
	writeField(&b, labelTags, formatTags(entry.Tags))
	if entry.Reflections != "" {
		writeField(&b, labelReflections, entry.Reflections)
	}

	return b.String()
}

// FormatAll renders a whole date file.
func FormatAll(entries []journal.Entry, issueBaseURL string) string {
	blocks := make([]string, 0, len(entries))
	for _, entry := range entries {
		blocks = append(blocks, Format(entry, issueBaseURL))
	}
	return strings.Join(blocks, EntrySeparator)
}

// IssueURL returns the browse URL of an issue key.
func IssueURL(issueBaseURL, key string) string {
	base := strings.TrimRight(strings.TrimSpace(issueBaseURL), "/")
	if base == "" {
		base = DefaultIssueBaseURL
	}
	return base + "/browse/" + key
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString(lineBreak)
}

func formatLinks(entry journal.Entry, issueBaseURL string) string {
	parts := make([]string, 0, len(entry.Issues)+len(entry.Links))
	for _, ref := range entry.Issues {
		key := strings.TrimSpace(ref.Key)
		if key == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s](%s)", key, IssueURL(issueBaseURL, key)))
	}
	for _, link := range journal.CleanLinks(entry.Links) {
		parts = append(parts, fmt.Sprintf("[%s](%s)", link.Text, link.URL))
	}
	return strings.Join(parts, ", ")
}

func formatTags(tags []string) string {
	tags = journal.NormalizeTags(tags)
	if len(tags) == 0 {
		return emptyMarker
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, "#"+tag)
	}
	return strings.Join(parts, " ")
}

var lineFolder = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// singleLine folds line breaks so a one-line field cannot spill into the next line.
func singleLine(value string) string {
	return strings.TrimSpace(lineFolder.Replace(value))
}
