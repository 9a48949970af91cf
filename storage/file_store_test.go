package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devjournal/entrytext"
	"devjournal/journal"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "journal"), "https://jira.example.com")
	require.NoError(t, err)
	store.now = func() time.Time {
		return time.Date(2026, 3, 5, 9, 30, 0, 0, time.Local)
	}
	return store
}

func testEntry(project, description string) journal.Entry {
	entry := journal.NewEntry()
	entry.Project = project
	entry.Description = description
	entry.Duration = "1h"
	entry.Tags = []string{"feature"}
	return entry
}

func TestFileStore_SaveCreatesThenAppends(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)

	saved, err := store.Save("2026-03-05", testEntry("Mandate", "first"))
	require.NoError(t, err)
	assert.Equal(t, "05/03/2026 09:30", saved.Timestamp)

	content, err := store.Load("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, entrytext.Format(saved, "https://jira.example.com"), content)

	_, err = store.Save("2026-03-05", testEntry("Claims", "second"))
	require.NoError(t, err)

	content, err = store.Load("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(content, entrytext.EntrySeparator))

	entries, err := store.Entries("2026-03-05")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Mandate", entries[0].Project)
	assert.Equal(t, "Claims", entries[1].Project)
}

func TestFileStore_LoadMissingDateIsEmpty(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)

	content, err := store.Load("2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, content)

	entries, err := store.Entries("2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStore_RejectsInvalidDate(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)

	_, err := store.Save("../escape", testEntry("p", "d"))
	require.Error(t, err)
	_, err = store.Load("2026-13-01")
	require.Error(t, err)
	_, err = store.Update("bad", 0, testEntry("p", "d"))
	require.Error(t, err)
}

func TestFileStore_ListDatesFiltersAndSortsDescending(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)
	for _, name := range []string{
		"2026-03-01.md",
		"2026-03-05.md",
		"2025-12-31.md",
		"notes.md",
		"2026-3-1.md",
		"2026-03-02.txt",
		"abcd-ef-gh.md",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), name), []byte(""), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "2026-04-01.md"), 0o755))

	dates, err := store.ListDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-05", "2026-03-01", "2025-12-31"}, dates)
}

func TestFileStore_UpdateKeepsTimestamp(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)
	_, err := store.Save("2026-03-05", testEntry("Mandate", "first"))
	require.NoError(t, err)
	_, err = store.Save("2026-03-05", testEntry("Claims", "second"))
	require.NoError(t, err)

	replacement := testEntry("Socle", "rewritten")
	replacement.Timestamp = "01/01/1999 00:00"

	ok, err := store.Update("2026-03-05", 1, replacement)
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := store.Entries("2026-03-05")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Mandate", entries[0].Project)
	assert.Equal(t, "Socle", entries[1].Project)
	assert.Equal(t, "rewritten", entries[1].Description)
	assert.Equal(t, "05/03/2026 09:30", entries[1].Timestamp)
}

func TestFileStore_UpdateKeepsHandWrittenRulesInOtherEntries(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)
	content := "## 05/03/2026 09:00\n" +
		"**Projet**: Mandate  \n" +
		"**Description**: step one\n" +
		"---\n" +
		"step two written by hand\n" +
		"**Durée**: 1h minutes  \n" +
		"**Réflexions**: note\n" +
		"---\n" +
		"more notes\n" +
		entrytext.EntrySeparator +
		"## 05/03/2026 10:00\n" +
		"**Projet**: Claims  \n"
	require.NoError(t, os.WriteFile(store.Path("2026-03-05"), []byte(content), 0o644))

	ok, err := store.Update("2026-03-05", 1, testEntry("Socle", "rewritten"))
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := store.Entries("2026-03-05")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "step one\n---\nstep two written by hand", entries[0].Description)
	assert.Equal(t, "note\n---\nmore notes", entries[0].Reflections)
	assert.Equal(t, "Socle", entries[1].Project)
	assert.Equal(t, "05/03/2026 10:00", entries[1].Timestamp)
}

func TestFileStore_OutOfRangeLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)
	_, err := store.Save("2026-03-05", testEntry("Mandate", "only"))
	require.NoError(t, err)
	before, err := store.Load("2026-03-05")
	require.NoError(t, err)

	for _, index := range []int{-1, 1, 7} {
		ok, err := store.Update("2026-03-05", index, testEntry("x", "y"))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.Delete("2026-03-05", index)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	after, err := store.Load("2026-03-05")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_MissingFileIsFalse(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)

	ok, err := store.Update("2026-02-01", 0, testEntry("x", "y"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Delete("2026-02-01", 0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = os.Stat(store.Path("2026-02-01"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_DeleteLastEntryLeavesEmptyFile(t *testing.T) {
	t.Parallel()

	store := newTestFileStore(t)
	_, err := store.Save("2026-03-05", testEntry("Mandate", "first"))
	require.NoError(t, err)
	_, err = store.Save("2026-03-05", testEntry("Claims", "second"))
	require.NoError(t, err)

	ok, err := store.Delete("2026-03-05", 0)
	require.NoError(t, err)
	require.True(t, ok)

	entries, err := store.Entries("2026-03-05")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Claims", entries[0].Project)

	ok, err = store.Delete("2026-03-05", 0)
	require.NoError(t, err)
	require.True(t, ok)

	content, err := os.ReadFile(store.Path("2026-03-05"))
	require.NoError(t, err)
	assert.Empty(t, content)

	dates, err := store.ListDates()
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-03-05"}, dates)

	saved, err := store.Save("2026-03-05", testEntry("Formation", "after reset"))
	require.NoError(t, err)
	content, err = os.ReadFile(store.Path("2026-03-05"))
	require.NoError(t, err)
	assert.Equal(t, entrytext.Format(saved, "https://jira.example.com"), string(content))
}
