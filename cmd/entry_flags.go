package cmd

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"devjournal/journal"
)

// entryFlags holds the entry field flags shared by add and edit.
type entryFlags struct {
	project     string
	entryType   string
	description string
	duration    string
	timeRange   string
	results     string
	blockers    string
	reflections string
	tags        []string
	links       []string
	issues      []string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.project, "project", "p", "", "Project name")
	flags.StringVarP(&f.entryType, "type", "t", "", "Activity type (default \""+journal.DefaultEntryType+"\")")
	flags.StringVarP(&f.description, "description", "d", "", "What was done")
	flags.StringVar(&f.duration, "duration", "", "Duration text, e.g. 1h30, 45min, 2 (hours)")
	flags.StringVar(&f.timeRange, "time-range", "", "Optional time range, e.g. 09:00-10:30")
	flags.StringVar(&f.results, "results", "", "Results obtained")
	flags.StringVar(&f.blockers, "blockers", "", "Blockers met")
	flags.StringVar(&f.reflections, "reflections", "", "Notes and reflections")
	flags.StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable or comma separated)")
	flags.StringArrayVar(&f.links, "link", nil, "Link as text=url or a bare url (repeatable)")
	flags.StringSliceVar(&f.issues, "issue", nil, "Issue key such as ABC-123 (repeatable or comma separated)")
}

// entryInput is what the flags must satisfy before an entry is written.
type entryInput struct {
	Project  string   `validate:"required"`
	Links    []string `validate:"dive,url"`
	Issues   []string `validate:"dive,issuekey"`
	Duration string   `validate:"max=64"`
}

var entryValidator = newEntryValidator()

func newEntryValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("issuekey", func(fl validator.FieldLevel) bool {
		return journal.IsIssueKey(fl.Field().String())
	})
	return v
}

var entryFlagNames = []string{
	"project", "type", "description", "duration", "time-range",
	"results", "blockers", "reflections", "tag", "link", "issue",
}

func anyEntryFlagChanged(changed func(name string) bool) bool {
	for _, name := range entryFlagNames {
		if changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags accepted by changed onto entry.
func (f *entryFlags) apply(entry *journal.Entry, changed func(name string) bool) error {
	if changed("project") {
		entry.Project = strings.TrimSpace(f.project)
	}
	if changed("type") {
		entry.EntryType = strings.TrimSpace(f.entryType)
	}
	if changed("description") {
		entry.Description = f.description
	}
	if changed("duration") {
		entry.Duration = strings.TrimSpace(f.duration)
	}
	if changed("time-range") {
		entry.TimeRange = strings.TrimSpace(f.timeRange)
	}
	if changed("results") {
		entry.Results = f.results
	}
	if changed("blockers") {
		entry.Blockers = f.blockers
	}
	if changed("reflections") {
		entry.Reflections = f.reflections
	}
	if changed("tag") {
		entry.Tags = journal.NormalizeTags(f.tags)
	}
	if changed("link") {
		links := make([]journal.Link, 0, len(f.links))
		for _, raw := range f.links {
			link, err := parseLinkFlag(raw)
			if err != nil {
				return err
			}
			links = append(links, link)
		}
		entry.Links = journal.CleanLinks(links)
	}
	if changed("issue") {
		entry.Issues = parseIssueFlags(f.issues)
	}

	if entry.EntryType == "" {
		entry.EntryType = journal.DefaultEntryType
	}
	if entry.Duration == "" {
		entry.Duration = journal.DefaultDuration
	}
	return validateEntry(*entry)
}

func validateEntry(entry journal.Entry) error {
	input := entryInput{
		Project:  strings.TrimSpace(entry.Project),
		Duration: entry.Duration,
		Links:    make([]string, 0, len(entry.Links)),
		Issues:   entry.IssueKeys(),
	}
	for _, link := range entry.Links {
		input.Links = append(input.Links, link.URL)
	}
	if err := entryValidator.Struct(input); err != nil {
		return fmt.Errorf("invalid entry: %w", err)
	}
	return nil
}

// parseLinkFlag accepts "text=url" or a bare url.
func parseLinkFlag(value string) (journal.Link, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return journal.Link{}, fmt.Errorf("empty --link value")
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return journal.Link{Text: value, URL: value}, nil
	}
	text, url, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(text) == "" || strings.TrimSpace(url) == "" {
		return journal.Link{}, fmt.Errorf("invalid --link %q: expected text=url", value)
	}
	return journal.Link{Text: strings.TrimSpace(text), URL: strings.TrimSpace(url)}, nil
}

func parseIssueFlags(values []string) []journal.IssueRef {
	refs := make([]journal.IssueRef, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, raw := range values {
		key := strings.ToUpper(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		refs = append(refs, journal.IssueRef{Key: key})
	}
	if len(refs) == 0 {
		return nil
	}
	return refs
}
