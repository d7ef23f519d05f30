package recipient

import (
	"fmt"

	"github.com/0443n/herald/internal/identity"
)

// fakeDirectory is an in-memory identity database.
type fakeDirectory struct {
	users  map[string]identity.Identity
	groups map[string][]string
}

func newFakeDirectory(names ...string) *fakeDirectory {
	d := &fakeDirectory{
		users:  make(map[string]identity.Identity),
		groups: make(map[string][]string),
	}
	uid := 1000
	for _, name := range names {
		d.users[name] = identity.Identity{Name: name, UID: uid, GID: uid, Shell: "/bin/bash"}
		uid++
	}
	return d
}

func (d *fakeDirectory) Lookup(name string) (identity.Identity, error) {
	id, ok := d.users[name]
	if !ok {
		return identity.Identity{}, fmt.Errorf("%w: %s", identity.ErrUnknownUser, name)
	}
	return id, nil
}

func (d *fakeDirectory) GroupMembers(group string) ([]string, error) {
	members, ok := d.groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: %s", identity.ErrUnknownGroup, group)
	}
	return members, nil
}

func (d *fakeDirectory) Humans() ([]identity.Identity, error) {
	var out []identity.Identity
	for _, id := range d.users {
		if id.UID >= 1000 {
			out = append(out, id)
		}
	}
	return out, nil
}

// fakeQueues lists pre-existing queue directories.
type fakeQueues []string

func (q fakeQueues) Identities() ([]string, error) {
	return q, nil
}
