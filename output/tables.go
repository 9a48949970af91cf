package output

import (
	"fmt"
	"strings"

	"devjournal/internal/duration"
	"devjournal/journal"
	"devjournal/report"
)

// table is one titled grid. Cells are strings or float64/int values.
type table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

var entryHeaders = []string{
	"Timestamp", "Project", "EntryType", "TimeRange", "Duration", "Hours",
	"Description", "Results", "Blockers", "Reflections", "Tags", "Issues", "Links",
}

func entryRow(entry journal.Entry) []any {
	issues := make([]string, 0, len(entry.Issues))
	for _, ref := range entry.Issues {
		if ref.Summary != "" {
			issues = append(issues, ref.Key+" "+ref.Summary)
			continue
		}
		issues = append(issues, ref.Key)
	}
	links := make([]string, 0, len(entry.Links))
	for _, link := range entry.Links {
		links = append(links, fmt.Sprintf("%s <%s>", link.Text, link.URL))
	}

	return []any{
		entry.Timestamp,
		entry.Project,
		entry.EntryType,
		entry.TimeRange,
		entry.Duration,
		roundHours(duration.Hours(entry.Duration)),
		entry.Description,
		entry.Results,
		entry.Blockers,
		entry.Reflections,
		strings.Join(entry.Tags, " "),
		strings.Join(issues, ", "),
		strings.Join(links, ", "),
	}
}

func entryTable(entries []journal.Entry) table {
	rows := make([][]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, entryRow(entry))
	}
	return table{Name: "Entries", Headers: entryHeaders, Rows: rows}
}

func reportTables(r *report.ActivityReport) []table {
	summary := table{
		Name:    "Summary",
		Headers: []string{"PeriodStart", "PeriodEnd", "TotalEntries", "TotalHours", "SkippedDates"},
		Rows: [][]any{{
			r.PeriodStart,
			r.PeriodEnd,
			r.TotalEntries,
			roundHours(r.TotalHours),
			strings.Join(r.SkippedDates, " "),
		}},
	}

	projects := table{Name: "Projects", Headers: []string{"Project", "Entries", "Hours", "Color"}}
	for _, project := range r.Projects {
		projects.Rows = append(projects.Rows, []any{project.Name, project.Entries, roundHours(project.Hours), project.Color})
	}

	tags := table{Name: "Tags", Headers: []string{"Tag", "Count", "Hours", "Color"}}
	for _, tag := range r.Tags {
		tags.Rows = append(tags.Rows, []any{tag.Name, tag.Count, roundHours(tag.Hours), tag.Color})
	}

	types := table{Name: "ActivityTypes", Headers: []string{"EntryType", "Count"}}
	for _, name := range r.SortedActivityTypes() {
		types.Rows = append(types.Rows, []any{name, r.ActivityTypes[name]})
	}

	daily := table{Name: "Daily", Headers: []string{"Date", "Hours"}}
	for _, day := range r.SortedDays() {
		daily.Rows = append(daily.Rows, []any{day, roundHours(r.Daily[day])})
	}

	monthly := table{Name: "Monthly", Headers: []string{"Month", "Entries", "Hours", "Projects", "Tags"}}
	for _, detail := range r.MonthlyDetails {
		monthly.Rows = append(monthly.Rows, []any{
			detail.Month,
			detail.Entries,
			roundHours(detail.Hours),
			formatHoursByName(detail.Projects, detail.ProjectHours),
			formatHoursByName(detail.Tags, detail.TagHours),
		})
	}

	return []table{summary, projects, tags, types, daily, monthly}
}

func formatHoursByName(names []string, hours map[string]float64) string {
	parts := make([]string, 0, len(names))
	for _, name := range names {
		label := name
		if label == "" {
			label = "(none)"
		}
		parts = append(parts, fmt.Sprintf("%s=%.2f", label, hours[name]))
	}
	return strings.Join(parts, " ")
}

func roundHours(value float64) float64 {
	return float64(int64(value*100+0.5)) / 100
}

func cellText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprint(v)
	}
}
