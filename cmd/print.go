package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"devjournal/internal/duration"
	"devjournal/journal"
	"devjournal/report"
)

// printEntry writes one entry with its 1-based position in the date file.
func printEntry(w io.Writer, position int, entry journal.Entry) {
	fmt.Fprintf(w, "#%d  %s  %s [%s]  %s (%.2fh)\n",
		position, entry.Timestamp, entry.Project, entry.EntryType, entry.Duration, duration.Hours(entry.Duration))
	if entry.TimeRange != "" {
		fmt.Fprintf(w, "    time: %s\n", entry.TimeRange)
	}
	printBlock(w, "description", entry.Description)
	printBlock(w, "results", entry.Results)
	printBlock(w, "blockers", entry.Blockers)
	printBlock(w, "reflections", entry.Reflections)
	if len(entry.Tags) > 0 {
		fmt.Fprintf(w, "    tags: #%s\n", strings.Join(entry.Tags, " #"))
	}
	for _, ref := range entry.Issues {
		if ref.Summary != "" {
			fmt.Fprintf(w, "    issue: %s %s\n", ref.Key, ref.Summary)
			continue
		}
		fmt.Fprintf(w, "    issue: %s\n", ref.Key)
	}
	for _, link := range entry.Links {
		fmt.Fprintf(w, "    link: %s <%s>\n", link.Text, link.URL)
	}
}

func printBlock(w io.Writer, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	lines := strings.Split(value, "\n")
	fmt.Fprintf(w, "    %s: %s\n", label, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "      %s\n", line)
	}
}

func printReport(w io.Writer, r *report.ActivityReport) {
	fmt.Fprintf(w, "Period: %s .. %s\n", r.PeriodStart, r.PeriodEnd)
	fmt.Fprintf(w, "Entries: %d, Hours: %.2f\n", r.TotalEntries, r.TotalHours)

	if len(r.Projects) > 0 {
		fmt.Fprintln(w, "\nProjects:")
		for _, p := range r.Projects {
			fmt.Fprintf(w, "  %-24s %4d entries %8.2fh\n", p.Name, p.Entries, p.Hours)
		}
	}
	if len(r.Tags) > 0 {
		fmt.Fprintln(w, "\nTags:")
		for _, t := range r.Tags {
			fmt.Fprintf(w, "  %-24s %4d uses    %8.2fh\n", t.Name, t.Count, t.Hours)
		}
	}
	if types := r.SortedActivityTypes(); len(types) > 0 {
		fmt.Fprintln(w, "\nActivity types:")
		for _, name := range types {
			fmt.Fprintf(w, "  %-24s %4d entries\n", name, r.ActivityTypes[name])
		}
	}
	if days := r.SortedDays(); len(days) > 0 {
		fmt.Fprintln(w, "\nDaily:")
		for _, day := range days {
			fmt.Fprintf(w, "  %s %8.2fh\n", day, r.Daily[day])
		}
	}
	if len(r.MonthlyDetails) > 0 {
		fmt.Fprintln(w, "\nMonthly:")
		for _, m := range r.MonthlyDetails {
			fmt.Fprintf(w, "  %s %4d entries %8.2fh  %s\n", m.Month, m.Entries, m.Hours, formatProjectHours(m.ProjectHours))
		}
	}
}

func formatProjectHours(hours map[string]float64) string {
	names := make([]string, 0, len(hours))
	for name := range hours {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%.2f", name, hours[name]))
	}
	return strings.Join(parts, " ")
}
