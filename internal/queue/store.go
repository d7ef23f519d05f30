// Package queue implements the per-user notification queue directories:
// owner-only directories under a common base, atomically placed entry
// files, a history subdirectory for delivered entries, and bounded-size
// history rotation. The filesystem is the only shared state between
// senders and receivers; rename atomicity is the synchronization point.
package queue

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0443n/herald/internal/fileutil"
	"github.com/0443n/herald/internal/identity"
	"github.com/0443n/herald/internal/notification"
)

// DefaultBase is the queue base directory unless HERALD_BASE_DIR overrides it.
const DefaultBase = "/var/lib/herald"

// HistoryDirName is the per-user subdirectory holding delivered entries.
const HistoryDirName = ".read"

const dirMode = 0o700

// Store manages queue directories under a single base directory.
type Store struct {
	Base string
}

// New returns a store rooted at base.
func New(base string) *Store {
	return &Store{Base: base}
}

// BaseDir resolves the queue base directory from the environment.
func BaseDir() string {
	if dir := os.Getenv("HERALD_BASE_DIR"); dir != "" {
		return dir
	}
	return DefaultBase
}

// UserDir returns the queue directory path for a user.
func (s *Store) UserDir(name string) string {
	return filepath.Join(s.Base, name)
}

// HistoryDir returns the history subdirectory path for a user.
func (s *Store) HistoryDir(name string) string {
	return filepath.Join(s.Base, name, HistoryDirName)
}

// Identities lists the users that already have a queue directory.
func (s *Store) Identities() ([]string, error) {
	entries, err := os.ReadDir(s.Base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !hiddenName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// EnsureUserDir idempotently creates the user's queue directory and its
// history subdirectory, owned by the user with owner-only permissions.
// Ownership and mode are re-asserted on every call so manual creation or
// tampering cannot loosen them. The base directory must already exist.
func (s *Store) EnsureUserDir(id identity.Identity) error {
	if !fileutil.IsSafeName(id.Name) {
		return fmt.Errorf("unsafe queue directory name %q", id.Name)
	}
	for _, dir := range []string{s.UserDir(id.Name), s.HistoryDir(id.Name)} {
		if err := os.Mkdir(dir, dirMode); err != nil && !os.IsExist(err) {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		if err := os.Chown(dir, id.UID, id.GID); err != nil {
			return fmt.Errorf("chown %s: %w", dir, err)
		}
		if err := os.Chmod(dir, dirMode); err != nil {
			return fmt.Errorf("chmod %s: %w", dir, err)
		}
	}
	return nil
}

// Place atomically writes one notification into the user's queue. The
// serialized entry goes to a dot-prefixed temp file (invisible to the
// receiver's watch), is flushed to disk, chowned to the recipient, and
// then renamed to its final unique name in a single atomic step. No
// reader ever observes a partial entry under a final name. Returns the
// entry name.
func (s *Store) Place(id identity.Identity, n notification.Notification) (string, error) {
	data, err := n.Marshal()
	if err != nil {
		return "", err
	}

	dir := s.UserDir(id.Name)
	tmp, err := os.CreateTemp(dir, ".herald-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp entry: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write entry: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return "", fmt.Errorf("sync entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close entry: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return "", fmt.Errorf("chmod entry: %w", err)
	}
	if err := os.Chown(tmp.Name(), id.UID, id.GID); err != nil {
		return "", fmt.Errorf("chown entry: %w", err)
	}

	entry := NewEntryName(time.Now())
	if err := os.Rename(tmp.Name(), filepath.Join(dir, entry)); err != nil {
		return "", fmt.Errorf("rename entry: %w", err)
	}
	return entry, nil
}

// Pending returns the names of the user's pending entries in filename
// (chronological) order.
func (s *Store) Pending(name string) ([]string, error) {
	entries, err := os.ReadDir(s.UserDir(name))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && IsEntryName(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ReadEntry reads a pending entry's content.
func (s *Store) ReadEntry(name, entry string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.UserDir(name), entry))
}

// MarkDelivered atomically moves a pending entry into the history
// subdirectory, preserving its name.
func (s *Store) MarkDelivered(name, entry string) error {
	src := filepath.Join(s.UserDir(name), entry)
	dst := filepath.Join(s.HistoryDir(name), entry)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move to history: %w", err)
	}
	return nil
}

// RotateHistory deletes the oldest history entries until at most max
// remain. Entry names sort chronologically, so lexical order is age order.
func (s *Store) RotateHistory(name string, max int) error {
	entries, err := os.ReadDir(s.HistoryDir(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	excess := len(entries) - max
	if excess <= 0 {
		return nil
	}

	var errs []error
	for _, e := range entries[:excess] {
		if err := os.Remove(filepath.Join(s.HistoryDir(name), e.Name())); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func hiddenName(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
