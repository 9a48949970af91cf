package entrytext

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"devjournal/journal"
)

const testIssueBase = "https://jira.example.com"

func sampleEntry() journal.Entry {
	return journal.Entry{
		Timestamp:   "05/03/2026 09:07",
		Project:     "Mandate",
		EntryType:   "développement",
		Description: "line one\nline two",
		Duration:    "1h30",
		TimeRange:   "09:00-10:30",
		Results:     "done",
		Blockers:    "waiting for review",
		Reflections: "pairing helped",
		Tags:        []string{"bug", "release"},
		Links:       []journal.Link{{Text: "doc", URL: "https://docs.example.com/a"}},
		Issues:      []journal.IssueRef{{Key: "PROJ-1"}},
	}
}

func TestFormat_WritesFieldsInFixedOrder(t *testing.T) {
	t.Parallel()

	got := Format(sampleEntry(), testIssueBase)
	want := "## 05/03/2026 09:07\n" +
		"**Projet**: Mandate  \n" +
		"**Plage horaire**: 09:00-10:30  \n" +
		"**Type d'activité**: développement  \n" +
		"**Description**: line one\nline two  \n" +
		"**Durée**: 1h30 minutes  \n" +
		"**Résultats**: done  \n" +
		"**Blocages**: waiting for review  \n" +
		"**Liens**: [PROJ-1](https://jira.example.com/browse/PROJ-1), [doc](https://docs.example.com/a)  \n" +
		"**Tags**: #bug #release  \n" +
		"**Réflexions**: pairing helped  \n"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected markdown (-want +got):\n%s", diff)
	}
}

func TestFormat_OmitsOptionalFields(t *testing.T) {
	t.Parallel()

	entry := journal.NewEntry()
	entry.Timestamp = "01/01/2026 08:00"
	entry.Project = "Socle"
	entry.Description = "setup"

	got := Format(entry, testIssueBase)
	for _, label := range []string{labelTimeRange, labelResults, labelBlockers, labelLinks, labelReflections} {
		if strings.Contains(got, label) {
			t.Fatalf("expected %s to be omitted, got:\n%s", label, got)
		}
	}
	if !strings.Contains(got, "**Tags**: Aucun  \n") {
		t.Fatalf("expected empty tag marker, got:\n%s", got)
	}
}

func TestFormat_DropsIncompleteLinks(t *testing.T) {
	t.Parallel()

	entry := journal.NewEntry()
	entry.Timestamp = "01/01/2026 08:00"
	entry.Links = []journal.Link{{Text: "", URL: "https://x"}, {Text: "y", URL: ""}}

	if got := Format(entry, testIssueBase); strings.Contains(got, labelLinks) {
		t.Fatalf("expected no links line, got:\n%s", got)
	}
}

func TestFormat_DefaultIssueBase(t *testing.T) {
	t.Parallel()

	if got := IssueURL("", "ABC-7"); got != DefaultIssueBaseURL+"/browse/ABC-7" {
		t.Fatalf("unexpected issue url %q", got)
	}
	if got := IssueURL("https://jira.example.com/", "ABC-7"); got != "https://jira.example.com/browse/ABC-7" {
		t.Fatalf("unexpected issue url %q", got)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	first := sampleEntry()
	first.Issues[0].Summary = "display only"

	second := journal.NewEntry()
	second.Timestamp = "05/03/2026 14:00"
	second.Project = "Claims"
	second.Description = "short"
	second.Duration = "45min"
	second.Reflections = "first line\n  indented follow-up"

	content := FormatAll([]journal.Entry{first, second}, testIssueBase)
	got := Parse(content)

	first.Issues[0].Summary = ""
	want := []journal.Entry{first, second}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RoundTripKeepsMinuteWording(t *testing.T) {
	t.Parallel()

	entry := journal.NewEntry()
	entry.Timestamp = "05/03/2026 09:00"
	entry.Duration = "5 minutes"

	got := Parse(Format(entry, testIssueBase))
	if len(got) != 1 || got[0].Duration != "5 minutes" {
		t.Fatalf("expected duration to survive, got %+v", got)
	}
}

func TestParse_RoundTripKeepsRuleLines(t *testing.T) {
	t.Parallel()

	first := journal.NewEntry()
	first.Timestamp = "05/03/2026 09:00"
	first.Project = "Mandate"
	first.Description = "before\n---\nafter"
	first.Results = "step one\n---\nstep two"

	second := journal.NewEntry()
	second.Timestamp = "05/03/2026 11:00"
	second.Project = "Claims"
	second.Reflections = "closing\n---\nlast words\n---"

	third := journal.NewEntry()
	third.Timestamp = "05/03/2026 15:00"
	third.Project = "Socle"
	third.Reflections = "ends the file\n---"

	want := []journal.Entry{first, second, third}
	got := Parse(FormatAll(want, testIssueBase))
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Leniency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []journal.Entry
	}{
		{name: "empty", content: "", want: nil},
		{name: "no heading", content: "just notes\n**Projet**: X\n", want: nil},
		{
			name:    "preamble discarded and defaults applied",
			content: "# Journal\nintro\n## 01/02/2026 10:00\n**Projet**: Socle\n",
			want: []journal.Entry{{
				Timestamp: "01/02/2026 10:00",
				Project:   "Socle",
				EntryType: journal.DefaultEntryType,
				Duration:  journal.DefaultDuration,
			}},
		},
		{
			name:    "empty heading skipped",
			content: "## \n**Projet**: Lost\n## 01/02/2026 11:00\n**Projet**: Kept\n",
			want: []journal.Entry{{
				Timestamp: "01/02/2026 11:00",
				Project:   "Kept",
				EntryType: journal.DefaultEntryType,
				Duration:  journal.DefaultDuration,
			}},
		},
		{
			name: "unknown labels and markup inside descriptions",
			content: "## 01/02/2026 12:00\n" +
				"**Humeur**: fine\n" +
				"**Description**: first\n" +
				"\n" +
				"**bold** remark  \n" +
				"**Durée**: 90 minutes\n" +
				"**Tags**: Aucun\n",
			want: []journal.Entry{{
				Timestamp:   "01/02/2026 12:00",
				EntryType:   journal.DefaultEntryType,
				Description: "first\n**bold** remark",
				Duration:    "90",
			}},
		},
		{
			name: "tags and links",
			content: "## 01/02/2026 13:00\n" +
				"**Tags**: #bug  feature #bug #\n" +
				"**Liens**: [ABC-12](https://jira/browse/ABC-12), [ABC-13](https://elsewhere/ABC-13), [notes](https://s)\n",
			want: []journal.Entry{{
				Timestamp: "01/02/2026 13:00",
				EntryType: journal.DefaultEntryType,
				Duration:  journal.DefaultDuration,
				Tags:      []string{"bug", "feature"},
				Issues:    []journal.IssueRef{{Key: "ABC-12"}},
				Links:     []journal.Link{{Text: "notes", URL: "https://s"}},
			}},
		},
		{
			name: "separator ends trailing reflections",
			content: "## 01/02/2026 14:00\n" +
				"**Réflexions**: calm day\n" +
				"\n---\n\n" +
				"## 01/02/2026 15:00\n" +
				"**Projet**: Next\n",
			want: []journal.Entry{
				{
					Timestamp:   "01/02/2026 14:00",
					EntryType:   journal.DefaultEntryType,
					Duration:    journal.DefaultDuration,
					Reflections: "calm day",
				},
				{
					Timestamp: "01/02/2026 15:00",
					Project:   "Next",
					EntryType: journal.DefaultEntryType,
					Duration:  journal.DefaultDuration,
				},
			},
		},
		{
			name: "hand-written rule inside description",
			content: "## 01/02/2026 17:00\n" +
				"**Description**: step one\n" +
				"---\n" +
				"step two written by hand\n" +
				"**Projet**: Rule\n",
			want: []journal.Entry{{
				Timestamp:   "01/02/2026 17:00",
				Project:     "Rule",
				EntryType:   journal.DefaultEntryType,
				Duration:    journal.DefaultDuration,
				Description: "step one\n---\nstep two written by hand",
			}},
		},
		{
			name:    "windows line endings",
			content: "## 01/02/2026 16:00\r\n**Projet**: Crlf\r\n",
			want: []journal.Entry{{
				Timestamp: "01/02/2026 16:00",
				Project:   "Crlf",
				EntryType: journal.DefaultEntryType,
				Duration:  journal.DefaultDuration,
			}},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Parse(tc.content)
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("unexpected entries (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_FoldsSingleLineFields(t *testing.T) {
	t.Parallel()

	entry := journal.NewEntry()
	entry.Timestamp = "01/01/2026 08:00"
	entry.Project = "two\nlines"

	got := Parse(Format(entry, testIssueBase))
	if len(got) != 1 || got[0].Project != "two lines" {
		t.Fatalf("expected folded project, got %+v", got)
	}
}
