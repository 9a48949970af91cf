package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"devjournal/internal/timeutil"
)

const watchDebounce = 100 * time.Millisecond

// DateChange reports that the file of one date was written or removed.
type DateChange struct {
	Date    string
	Path    string
	Removed bool
}

// Watcher reports date file changes in a journal directory.
// Bursts of events on the same file are collapsed into one change.
type Watcher struct {
	Dir     string
	Changes <-chan DateChange

	changes chan DateChange
	stop    chan struct{}
	done    chan struct{}
	watcher *fsnotify.Watcher
}

func NewWatcher(dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan DateChange, 16)
	return &Watcher{
		Dir:     dir,
		Changes: ch,
		changes: ch,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	close(w.stop)
	_ = w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(watchDebounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if _, isDate := dateFromPath(event.Name); !isDate {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[event.Name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, seen := range pending {
				if now.Sub(seen) < watchDebounce {
					continue
				}
				delete(pending, file)
				if !w.emit(file) {
					return
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are not fatal.
		}
	}
}

func (w *Watcher) emit(file string) bool {
	date, _ := dateFromPath(file)
	change := DateChange{Date: date, Path: file}
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		change.Removed = true
	}

	select {
	case w.changes <- change:
		return true
	case <-w.stop:
		return false
	}
}

func dateFromPath(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, dateFileExt) {
		return "", false
	}
	stem := strings.TrimSuffix(base, dateFileExt)
	return stem, timeutil.IsDateKey(stem)
}
