package report

import (
	"sort"

	"devjournal/internal/duration"
	"devjournal/internal/timeutil"
	"devjournal/journal"
)

const (
	DefaultProjectColor = "#007bff"
	DefaultTagColor     = "#6c757d"
)

// ActivityReport aggregates the entries of an inclusive date range.
// Map buckets have no defined order; Projects, Tags and MonthlyDetails are sorted.
type ActivityReport struct {
	PeriodStart    string             `json:"period_start"`
	PeriodEnd      string             `json:"period_end"`
	TotalEntries   int                `json:"total_entries"`
	TotalHours     float64            `json:"total_hours"`
	Projects       []ProjectSummary   `json:"projects_summary"`
	Tags           []TagSummary       `json:"tags_summary"`
	ActivityTypes  map[string]int     `json:"activity_types"`
	Daily          map[string]float64 `json:"daily_breakdown"`
	Monthly        map[string]float64 `json:"monthly_breakdown"`
	MonthlyDetails []MonthDetail      `json:"monthly_details"`
	SkippedDates   []string           `json:"skipped_dates,omitempty"`
}

type ProjectSummary struct {
	Name    string  `json:"name"`
	Entries int     `json:"entries"`
	Hours   float64 `json:"hours"`
	Color   string  `json:"color"`
}

type TagSummary struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Hours float64 `json:"hours"`
	Color string  `json:"color"`
}

// MonthDetail lists what was touched during one YYYY-MM month.
type MonthDetail struct {
	Month        string             `json:"month"`
	Entries      int                `json:"entries"`
	Hours        float64            `json:"hours"`
	Projects     []string           `json:"projects"`
	Tags         []string           `json:"tags"`
	ProjectHours map[string]float64 `json:"project_hours"`
	TagHours     map[string]float64 `json:"tag_hours"`
}

// Colors carries display colors for projects and tags. Unknown names get the defaults.
type Colors struct {
	Projects map[string]string
	Tags     map[string]string
}

func (c Colors) project(name string) string {
	if color, ok := c.Projects[name]; ok && color != "" {
		return color
	}
	return DefaultProjectColor
}

func (c Colors) tag(name string) string {
	if color, ok := c.Tags[name]; ok && color != "" {
		return color
	}
	return DefaultTagColor
}

type monthAccumulator struct {
	entries      int
	hours        float64
	projectHours map[string]float64
	tagHours     map[string]float64
}

// Build folds entries whose timestamps carry a leading "YYYY-MM-DD " day key.
func Build(start, end string, entries []journal.Entry, colors Colors) *ActivityReport {
	report := &ActivityReport{
		PeriodStart:    start,
		PeriodEnd:      end,
		Projects:       []ProjectSummary{},
		Tags:           []TagSummary{},
		ActivityTypes:  map[string]int{},
		Daily:          map[string]float64{},
		Monthly:        map[string]float64{},
		MonthlyDetails: []MonthDetail{},
	}

	projects := make(map[string]*ProjectSummary)
	tags := make(map[string]*TagSummary)
	months := make(map[string]*monthAccumulator)

	for _, entry := range entries {
		hours := duration.Hours(entry.Duration)
		day := timeutil.LeadingDay(entry.Timestamp)
		month := timeutil.MonthKey(day)

		report.TotalEntries++
		report.TotalHours += hours
		report.ActivityTypes[entry.EntryType]++
		report.Daily[day] += hours
		report.Monthly[month] += hours

		project, ok := projects[entry.Project]
		if !ok {
			project = &ProjectSummary{Name: entry.Project, Color: colors.project(entry.Project)}
			projects[entry.Project] = project
		}
		project.Entries++
		project.Hours += hours

		acc, ok := months[month]
		if !ok {
			acc = &monthAccumulator{
				projectHours: map[string]float64{},
				tagHours:     map[string]float64{},
			}
			months[month] = acc
		}
		acc.entries++
		acc.hours += hours
		acc.projectHours[entry.Project] += hours

		for _, name := range journal.NormalizeTags(entry.Tags) {
			tag, ok := tags[name]
			if !ok {
				tag = &TagSummary{Name: name, Color: colors.tag(name)}
				tags[name] = tag
			}
			tag.Count++
			tag.Hours += hours
			acc.tagHours[name] += hours
		}
	}

	for _, project := range projects {
		report.Projects = append(report.Projects, *project)
	}
	sort.Slice(report.Projects, func(i, j int) bool {
		return report.Projects[i].Name < report.Projects[j].Name
	})

	for _, tag := range tags {
		report.Tags = append(report.Tags, *tag)
	}
	sort.Slice(report.Tags, func(i, j int) bool {
		return report.Tags[i].Name < report.Tags[j].Name
	})

	for month, acc := range months {
		report.MonthlyDetails = append(report.MonthlyDetails, MonthDetail{
			Month:        month,
			Entries:      acc.entries,
			Hours:        acc.hours,
			Projects:     sortedKeys(acc.projectHours),
			Tags:         sortedKeys(acc.tagHours),
			ProjectHours: acc.projectHours,
			TagHours:     acc.tagHours,
		})
	}
	sort.Slice(report.MonthlyDetails, func(i, j int) bool {
		return report.MonthlyDetails[i].Month < report.MonthlyDetails[j].Month
	})

	return report
}

// SortedDays returns the day keys of the daily breakdown in ascending order.
func (r *ActivityReport) SortedDays() []string {
	return sortedKeys(r.Daily)
}

// SortedActivityTypes returns the activity type names in ascending order.
func (r *ActivityReport) SortedActivityTypes() []string {
	names := make([]string, 0, len(r.ActivityTypes))
	for name := range r.ActivityTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
