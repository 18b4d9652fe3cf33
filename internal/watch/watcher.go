// Package watch reports filesystem changes in the tree's expanded
// directories.
package watch

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is how long the watcher waits for a burst of changes to
// settle before reporting.
const DebounceDelay = 100 * time.Millisecond

// Event reports that something changed in Dir.
type Event struct {
	Dir string
	Op  fsnotify.Op
}

// Watcher watches a set of directories and emits one debounced Event per
// burst of changes.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan Event
	logger *slog.Logger

	mu      sync.Mutex
	watched map[string]bool
	closed  bool
}

// New starts a watcher with nothing watched yet.
func New(logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fs:      fw,
		events:  make(chan Event, 32),
		logger:  logger,
		watched: make(map[string]bool),
	}
	go w.loop()
	return w, nil
}

// Events returns the channel of debounced events. It is closed when the
// watcher is closed.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Sync makes dirs the watched set, adding new directories and dropping
// ones no longer listed. Directories that cannot be watched are skipped.
func (w *Watcher) Sync(dirs []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	want := make(map[string]bool, len(dirs))
	for _, d := range dirs {
		want[d] = true
		if w.watched[d] {
			continue
		}
		if err := w.fs.Add(d); err != nil {
			w.logger.Debug("watch add failed", "dir", d, "err", err)
			continue
		}
		w.watched[d] = true
	}
	for d := range w.watched {
		if !want[d] {
			_ = w.fs.Remove(d)
			delete(w.watched, d)
		}
	}
}

// Watched returns the number of watched directories.
func (w *Watcher) Watched() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()
	return w.fs.Close()
}

func (w *Watcher) loop() {
	var (
		timerMu sync.Mutex
		timer   *time.Timer
		last    Event
		done    bool
	)
	defer func() {
		timerMu.Lock()
		done = true
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Access-time and permission changes do not alter the listing.
			if ev.Op == fsnotify.Chmod {
				continue
			}

			timerMu.Lock()
			last = Event{Dir: filepath.Dir(ev.Name), Op: ev.Op}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(DebounceDelay, func() {
				timerMu.Lock()
				defer timerMu.Unlock()
				if done {
					return
				}
				select {
				case w.events <- last:
				default:
					// Channel full, drop event
				}
			})
			timerMu.Unlock()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Debug("watch error", "err", err)
		}
	}
}
