// Package recipient resolves notification targeting requests to sets of
// system identities.
package recipient

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/0443n/herald/internal/identity"
)

var (
	ErrNoTarget          = errors.New("no targeting mode specified")
	ErrConflictingTarget = errors.New("only one targeting mode may be used at a time")
	ErrNoRecipients      = errors.New("no valid recipients found")
)

// AdminGroups are the Unix groups conventionally granting elevated
// privileges, used by the admin targeting mode. Which of them exist
// varies by distribution, so missing ones are skipped silently.
var AdminGroups = []string{"sudo", "wheel", "adm"}

// Target selects exactly one targeting mode.
type Target struct {
	Users    []string
	Groups   []string
	Admins   bool
	Everyone bool
}

// QueueLister exposes the users that already have a queue directory; the
// everyone mode unions them with the human accounts so that deliberately
// onboarded service accounts keep receiving.
type QueueLister interface {
	Identities() ([]string, error)
}

// Result is a resolution outcome. Missing holds the user or group names
// that could not be resolved; the caller decides whether partial delivery
// is acceptable.
type Result struct {
	Recipients []identity.Identity
	Missing    []string
}

// Resolve maps a target to a deduplicated identity set, sorted by name.
// Unknown names are collected in Result.Missing without aborting the rest
// of the resolution. An empty final set is ErrNoRecipients.
func Resolve(dir identity.Directory, queues QueueLister, t Target) (Result, error) {
	modes := 0
	for _, active := range []bool{len(t.Users) > 0, len(t.Groups) > 0, t.Admins, t.Everyone} {
		if active {
			modes++
		}
	}
	if modes == 0 {
		return Result{}, ErrNoTarget
	}
	if modes > 1 {
		return Result{}, ErrConflictingTarget
	}

	r := &resolution{dir: dir, seen: make(map[string]identity.Identity)}

	switch {
	case len(t.Users) > 0:
		for _, name := range t.Users {
			r.addUser(name)
		}
	case len(t.Groups) > 0:
		for _, group := range t.Groups {
			r.addGroup(group, true)
		}
	case t.Admins:
		found := false
		for _, group := range AdminGroups {
			if r.addGroup(group, false) {
				found = true
			}
		}
		if !found {
			r.missing = append(r.missing, AdminGroups...)
		}
	case t.Everyone:
		humans, err := dir.Humans()
		if err != nil {
			return Result{}, err
		}
		for _, id := range humans {
			r.add(id)
		}
		onboarded, err := queues.Identities()
		if err != nil {
			return Result{}, err
		}
		for _, name := range onboarded {
			if id, err := dir.Lookup(name); err == nil {
				r.add(id)
			}
		}
	}

	result := Result{Missing: r.missing}
	for _, id := range r.seen {
		result.Recipients = append(result.Recipients, id)
	}
	sort.Slice(result.Recipients, func(i, j int) bool {
		return result.Recipients[i].Name < result.Recipients[j].Name
	})
	if len(result.Recipients) == 0 {
		return result, ErrNoRecipients
	}
	return result, nil
}

type resolution struct {
	dir     identity.Directory
	seen    map[string]identity.Identity
	missing []string
}

func (r *resolution) add(id identity.Identity) {
	if _, ok := r.seen[id.Name]; !ok {
		r.seen[id.Name] = id
	}
}

func (r *resolution) addUser(name string) {
	id, err := r.dir.Lookup(name)
	if err != nil {
		slog.Warn("Unknown user, skipping", "user", name)
		r.missing = append(r.missing, name)
		return
	}
	r.add(id)
}

// addGroup resolves a group's members. When report is false a missing
// group is tolerated without being recorded (admin groups are
// distribution-dependent). Returns whether the group existed.
func (r *resolution) addGroup(group string, report bool) bool {
	members, err := r.dir.GroupMembers(group)
	if err != nil {
		if report {
			slog.Warn("Unknown group, skipping", "group", group)
			r.missing = append(r.missing, group)
		}
		return false
	}
	for _, member := range members {
		r.addUser(member)
	}
	return true
}
