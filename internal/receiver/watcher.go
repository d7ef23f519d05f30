package receiver

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Event is the arrival of a complete file (or directory) in a watched
// directory.
type Event struct {
	Dir  string
	Name string
}

// WatchSource emits an event when a new complete file appears in a watched
// directory. The production implementation is inotify-backed; tests
// substitute a fake that emits synthetic events.
type WatchSource interface {
	Add(dir string) error
	Remove(dir string) error
	Events() <-chan Event
	Close() error
}

// FSWatchSource adapts fsnotify to WatchSource. On Linux the Create op
// covers both plain creation and rename-into-directory; the sender only
// ever renames entries to their final names (temp files are dot-prefixed
// and filtered by the receiver), so a Create event for an entry name fires
// exactly when the atomic rename has completed and the file is whole.
type FSWatchSource struct {
	watcher *fsnotify.Watcher
	events  chan Event
}

// NewFSWatchSource opens the OS watch facility. Failure here is fatal to
// the receiver process: without a watch the loop cannot make any delivery
// guarantee.
func NewFSWatchSource() (*FSWatchSource, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	s := &FSWatchSource{
		watcher: w,
		events:  make(chan Event),
	}
	go s.forward()
	return s, nil
}

func (s *FSWatchSource) forward() {
	defer close(s.events)
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) {
				continue
			}
			s.events <- Event{Dir: filepath.Dir(ev.Name), Name: filepath.Base(ev.Name)}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("Watch error", "err", err)
		}
	}
}

func (s *FSWatchSource) Add(dir string) error    { return s.watcher.Add(dir) }
func (s *FSWatchSource) Remove(dir string) error { return s.watcher.Remove(dir) }

func (s *FSWatchSource) Events() <-chan Event { return s.events }

// Close tears down the watch handle. The events channel closes once the
// pending events are forwarded.
func (s *FSWatchSource) Close() error { return s.watcher.Close() }
