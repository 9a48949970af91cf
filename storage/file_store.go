package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"devjournal/entrytext"
	"devjournal/internal/timeutil"
	"devjournal/journal"
)

const (
	dateFileExt = ".md"
	dirPerms    = 0o755
	filePerms   = 0o644
)

// FileStore keeps one markdown file per date in a single directory.
// Mutations rewrite whole files atomically; concurrent writers on the same
// date are not coordinated and the last rename wins.
type FileStore struct {
	dir          string
	issueBaseURL string
	now          func() time.Time
}

func NewFileStore(dir, issueBaseURL string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("journal directory is required")
	}
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}
	return &FileStore{
		dir:          dir,
		issueBaseURL: issueBaseURL,
		now:          time.Now,
	}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path backing date.
func (s *FileStore) Path(date string) string {
	return filepath.Join(s.dir, date+dateFileExt)
}

// Save stamps entry with the current local time and appends it to the date file.
func (s *FileStore) Save(date string, entry journal.Entry) (journal.Entry, error) {
	if err := timeutil.ValidateDateKey(date); err != nil {
		return journal.Entry{}, err
	}

	entry.Timestamp = timeutil.Stamp(s.now())
	block := entrytext.Format(entry, s.issueBaseURL)

	existing, err := s.Load(date)
	if err != nil {
		return journal.Entry{}, err
	}
	content := block
	if strings.TrimSpace(existing) != "" {
		content = existing + entrytext.EntrySeparator + block
	}

	if err := s.write(date, content); err != nil {
		return journal.Entry{}, err
	}
	return entry, nil
}

// Load returns the raw date file, or an empty string when it does not exist.
func (s *FileStore) Load(date string) (string, error) {
	if err := timeutil.ValidateDateKey(date); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.Path(date))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read journal file %s: %w", date, err)
	}
	return string(data), nil
}

// Entries loads and parses the date file.
func (s *FileStore) Entries(date string) ([]journal.Entry, error) {
	content, err := s.Load(date)
	if err != nil {
		return nil, err
	}
	return entrytext.Parse(content), nil
}

// ListDates returns the dates that have a file, newest first.
func (s *FileStore) ListDates() ([]string, error) {
	items, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list journal directory: %w", err)
	}

	dates := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		name := item.Name()
		if !strings.HasSuffix(name, dateFileExt) {
			continue
		}
		stem := strings.TrimSuffix(name, dateFileExt)
		if !timeutil.IsDateKey(stem) {
			continue
		}
		dates = append(dates, stem)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Update replaces the entry at index, keeping its original timestamp.
// It returns false without touching the file when the file or index does not exist.
func (s *FileStore) Update(date string, index int, entry journal.Entry) (bool, error) {
	entries, ok, err := s.existingEntries(date, index)
	if err != nil || !ok {
		return false, err
	}

	entry.Timestamp = entries[index].Timestamp
	entries[index] = entry

	if err := s.write(date, entrytext.FormatAll(entries, s.issueBaseURL)); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the entry at index. Removing the last entry leaves an empty file.
func (s *FileStore) Delete(date string, index int) (bool, error) {
	entries, ok, err := s.existingEntries(date, index)
	if err != nil || !ok {
		return false, err
	}

	entries = append(entries[:index], entries[index+1:]...)
	if err := s.write(date, entrytext.FormatAll(entries, s.issueBaseURL)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) existingEntries(date string, index int) ([]journal.Entry, bool, error) {
	if err := timeutil.ValidateDateKey(date); err != nil {
		return nil, false, err
	}
	if _, err := os.Stat(s.Path(date)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stat journal file %s: %w", date, err)
	}

	entries, err := s.Entries(date)
	if err != nil {
		return nil, false, err
	}
	if index < 0 || index >= len(entries) {
		return nil, false, nil
	}
	return entries, true, nil
}

func (s *FileStore) write(date, content string) error {
	path := s.Path(date)
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return fmt.Errorf("write journal file %s: %w", date, err)
	}
	// atomic.WriteFile leaves new files with the temp file mode.
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("set journal file permissions: %w", err)
	}
	return nil
}
