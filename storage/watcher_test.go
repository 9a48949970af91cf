package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsSavedDate(t *testing.T) {
	store := newTestFileStore(t)

	w, err := NewWatcher(store.Dir())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if _, err := store.Save("2026-03-05", testEntry("Mandate", "watched")); err != nil {
		t.Fatalf("save entry: %v", err)
	}

	select {
	case change := <-w.Changes:
		if change.Date != "2026-03-05" {
			t.Fatalf("expected date 2026-03-05, got %q", change.Date)
		}
		if change.Removed {
			t.Fatalf("expected a write, got removal")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2026-03-06.md")
	if err := os.WriteFile(path, []byte("## x\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove file: %v", err)
	}

	select {
	case change := <-w.Changes:
		if !change.Removed || change.Date != "2026-03-06" {
			t.Fatalf("unexpected change: %+v", change)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal event")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	for _, name := range []string{"notes.md", "2026-03-05.txt", ".catalog.db"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("hello"), 0o644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}

	select {
	case change := <-w.Changes:
		t.Fatalf("unexpected change event: %+v", change)
	case <-time.After(300 * time.Millisecond):
	}
}
