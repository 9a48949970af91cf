package entrytext

import "regexp"

const (
	headingPrefix = "## "
	separatorLine = "---"

	// EntrySeparator joins consecutive entry blocks in a date file.
	EntrySeparator = "\n\n---\n\n"

	// DefaultIssueBaseURL is used for issue links when no tracker is configured.
	DefaultIssueBaseURL = "https://your-instance.atlassian.net"

	emptyMarker    = "Aucun"
	durationSuffix = "minutes"
	lineBreak      = "  \n"
)

const (
	labelProject     = "**Projet**:"
	labelTimeRange   = "**Plage horaire**:"
	labelEntryType   = "**Type d'activité**:"
	labelDescription = "**Description**:"
	labelDuration    = "**Durée**:"
	labelResults     = "**Résultats**:"
	labelBlockers    = "**Blocages**:"
	labelLinks       = "**Liens**:"
	labelTags        = "**Tags**:"
	labelReflections = "**Réflexions**:"
)

type field int

const (
	fieldNone field = iota
	fieldProject
	fieldTimeRange
	fieldEntryType
	fieldDescription
	fieldDuration
	fieldResults
	fieldBlockers
	fieldLinks
	fieldTags
	fieldReflections
)

var labels = []struct {
	prefix string
	field  field
}{
	{labelProject, fieldProject},
	{labelTimeRange, fieldTimeRange},
	{labelEntryType, fieldEntryType},
	{labelDescription, fieldDescription},
	{labelDuration, fieldDuration},
	{labelResults, fieldResults},
	{labelBlockers, fieldBlockers},
	{labelLinks, fieldLinks},
	{labelTags, fieldTags},
	{labelReflections, fieldReflections},
}

func (f field) multiLine() bool {
	switch f {
	case fieldDescription, fieldResults, fieldBlockers, fieldReflections:
		return true
	default:
		return false
	}
}

var (
	issueLinkPattern = regexp.MustCompile(`\[([A-Z]+-\d+)\]\([^)]*browse/[^)]+\)`)
	linkPattern      = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)
