// Package receiver implements the watch loop that turns queue entries into
// desktop notifications. One receiver instance watches one user's queue
// directory and runs as that user.
//
// The loop is an explicit state machine:
//
//	AwaitingDirectory -> Draining -> Watching
//
// AwaitingDirectory watches the base directory until the user's queue
// directory is created (nothing has ever been sent to this user yet).
// Draining processes the backlog in filename order, then Watching handles
// live arrivals until the process is stopped. Entries left pending at
// shutdown are picked up by the next Draining pass.
package receiver

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/0443n/herald/internal/config"
	"github.com/0443n/herald/internal/notification"
	"github.com/0443n/herald/internal/queue"
)

// State names the receiver's position in its lifecycle.
type State int

const (
	StateAwaitingDirectory State = iota
	StateDraining
	StateWatching
)

func (s State) String() string {
	switch s {
	case StateAwaitingDirectory:
		return "awaiting-directory"
	case StateDraining:
		return "draining"
	case StateWatching:
		return "watching"
	}
	return "unknown"
}

// Presenter displays a notification in the current session. A failure is
// logged but never aborts the loop.
type Presenter interface {
	Present(n notification.Notification) error
}

// Receiver drives the watch loop for a single user.
type Receiver struct {
	store     *queue.Store
	cfg       config.Config
	presenter Presenter
	source    WatchSource
	user      string
	state     State
}

// New builds a receiver for the given user's queue.
func New(store *queue.Store, cfg config.Config, presenter Presenter, source WatchSource, user string) *Receiver {
	return &Receiver{
		store:     store,
		cfg:       cfg,
		presenter: presenter,
		source:    source,
		user:      user,
	}
}

// State returns the receiver's current state.
func (r *Receiver) State() State {
	return r.state
}

// Run executes the state machine until ctx is cancelled. It returns nil on
// cancellation; the only errors are failures to establish or keep the watch
// itself, without which the receiver can guarantee nothing.
func (r *Receiver) Run(ctx context.Context) error {
	dir := r.store.UserDir(r.user)

	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		r.state = StateAwaitingDirectory
		slog.Info("Queue directory does not exist yet, waiting for first delivery", "dir", dir)
		ok, err := r.awaitDirectory(ctx)
		if err != nil || !ok {
			return err
		}
	}

	// Register the directory watch before draining so nothing arriving
	// between the two is missed. Entries seen by both the drain pass and
	// a queued event are handled once; the second pass finds them gone.
	if err := r.source.Add(dir); err != nil {
		return err
	}

	r.state = StateDraining
	if err := r.drain(); err != nil {
		return err
	}

	r.state = StateWatching
	slog.Info("Watching for notifications", "dir", dir)
	return r.watch(ctx, dir)
}

// awaitDirectory blocks until the user's queue directory is created in the
// base directory. Returns false on cancellation.
func (r *Receiver) awaitDirectory(ctx context.Context) (bool, error) {
	if err := r.source.Add(r.store.Base); err != nil {
		return false, err
	}
	defer r.source.Remove(r.store.Base)

	// The directory may have appeared between the stat and the watch
	// registration.
	if _, err := os.Stat(r.store.UserDir(r.user)); err == nil {
		return true, nil
	}

	for {
		select {
		case <-ctx.Done():
			return false, nil
		case ev, ok := <-r.source.Events():
			if !ok {
				return false, errors.New("watch source closed")
			}
			if ev.Dir == r.store.Base && ev.Name == r.user {
				return true, nil
			}
		}
	}
}

func (r *Receiver) drain() error {
	entries, err := r.store.Pending(r.user)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		r.process(entry)
	}
	r.rotate()
	return nil
}

func (r *Receiver) watch(ctx context.Context, dir string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-r.source.Events():
			if !ok {
				return errors.New("watch source closed")
			}
			if ev.Dir != dir || !queue.IsEntryName(ev.Name) {
				continue
			}
			r.process(ev.Name)
			r.rotate()
		}
	}
}

// process handles a single entry: parse, present unless filtered or
// malformed, and move to history. Malformed entries are quarantined into
// history so they are never re-processed; a presentation failure still
// marks the entry delivered, so a broken notification server cannot cause
// a re-presentation storm.
func (r *Receiver) process(entry string) {
	data, err := r.store.ReadEntry(r.user, entry)
	if err != nil {
		if os.IsNotExist(err) {
			// Already handled by a preceding drain pass.
			return
		}
		slog.Warn("Could not read entry", "entry", entry, "err", err)
	} else if n, perr := notification.Parse(data); perr != nil {
		slog.Warn("Quarantining malformed entry", "entry", entry, "err", perr)
	} else if !r.cfg.Presentable(n.Urgency) {
		slog.Debug("Filtered notification", "entry", entry, "urgency", n.Urgency)
	} else if perr := r.presenter.Present(r.applyConfig(n)); perr != nil {
		slog.Error("Presentation failed", "entry", entry, "err", perr)
	}

	if err := r.store.MarkDelivered(r.user, entry); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Could not move entry to history", "entry", entry, "err", err)
	}
}

func (r *Receiver) rotate() {
	if err := r.store.RotateHistory(r.user, r.cfg.MaxHistory); err != nil {
		slog.Warn("History rotation failed", "user", r.user, "err", err)
	}
}

// applyConfig applies the presentation overrides to a parsed notification.
func (r *Receiver) applyConfig(n notification.Notification) notification.Notification {
	if r.cfg.TimeoutOverride != nil {
		n.Timeout = *r.cfg.TimeoutOverride
	}
	if !r.cfg.ShowBody {
		n.Body = ""
	}
	return n
}
