package entrytext

import (
	"strings"

	"devjournal/journal"
)

// Parse recovers the entries of one date file. It never fails: text before the
// first heading, unknown labels and stray lines are ignored, and missing fields
// keep their defaults.
func Parse(content string) []journal.Entry {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	entries := make([]journal.Entry, 0, 8)

	var (
		current *journal.Entry
		open    field
		parts   []string
	)

	flush := func() {
		if current != nil && open != fieldNone {
			setMultiLine(current, open, strings.Join(parts, "\n"))
		}
		open = fieldNone
		parts = nil
	}
	// closeEntry drops the one entry separator between the last open field and the next heading.
	closeEntry := func() {
		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == separatorLine {
			parts = parts[:len(parts)-1]
		}
		flush()
	}

	for _, raw := range lines {
		if strings.HasPrefix(raw, headingPrefix) {
			closeEntry()
			if current != nil {
				entries = append(entries, *current)
				current = nil
			}
			timestamp := strings.TrimSpace(strings.TrimPrefix(raw, headingPrefix))
			if timestamp == "" {
				continue
			}
			entry := journal.NewEntry()
			entry.Timestamp = timestamp
			current = &entry
			continue
		}
		if current == nil {
			continue
		}

		line := strings.TrimSpace(raw)
		kind, rest := matchLabel(line)
		if kind == fieldNone {
			if open != fieldNone && line != "" {
				parts = append(parts, strings.TrimRight(raw, " \t"))
			}
			continue
		}

		flush()
		value := strings.TrimSpace(rest)
		if kind.multiLine() {
			open = kind
			if value != "" {
				parts = append(parts, value)
			}
			continue
		}
		setSingleLine(current, kind, value)
	}

	flush()
	if current != nil {
		entries = append(entries, *current)
	}
	return entries
}

func matchLabel(line string) (field, string) {
	for _, label := range labels {
		if strings.HasPrefix(line, label.prefix) {
			return label.field, line[len(label.prefix):]
		}
	}
	return fieldNone, ""
}

func setMultiLine(entry *journal.Entry, kind field, value string) {
	switch kind {
	case fieldDescription:
		entry.Description = value
	case fieldResults:
		entry.Results = value
	case fieldBlockers:
		entry.Blockers = value
	case fieldReflections:
		entry.Reflections = value
	}
}

func setSingleLine(entry *journal.Entry, kind field, value string) {
	switch kind {
	case fieldProject:
		entry.Project = value
	case fieldTimeRange:
		entry.TimeRange = value
	case fieldEntryType:
		entry.EntryType = value
	case fieldDuration:
		entry.Duration = strings.TrimSpace(strings.TrimSuffix(value, durationSuffix))
	case fieldTags:
		entry.Tags = parseTags(value)
	case fieldLinks:
		entry.Issues, entry.Links = parseLinks(value)
	}
}

func parseTags(value string) []string {
	if value == "" || value == emptyMarker {
		return nil
	}
	return journal.NormalizeTags(strings.Fields(value))
}

func parseLinks(value string) ([]journal.IssueRef, []journal.Link) {
	if value == "" || value == emptyMarker {
		return nil, nil
	}

	var issues []journal.IssueRef
	for _, match := range issueLinkPattern.FindAllStringSubmatch(value, -1) {
		issues = append(issues, journal.IssueRef{Key: match[1]})
	}

	var links []journal.Link
	for _, match := range linkPattern.FindAllStringSubmatch(value, -1) {
		text := strings.TrimSpace(match[1])
		url := strings.TrimSpace(match[2])
		if journal.IsIssueKey(text) || text == "" || url == "" {
			continue
		}
		links = append(links, journal.Link{Text: text, URL: url})
	}
	return issues, links
}
