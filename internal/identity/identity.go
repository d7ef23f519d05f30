// Package identity looks up system user accounts for notification targeting.
package identity

import "errors"

var (
	ErrUnknownUser  = errors.New("unknown user")
	ErrUnknownGroup = errors.New("unknown group")
)

// Identity is a system user account.
type Identity struct {
	Name  string
	UID   int
	GID   int
	Home  string
	Shell string
}

// Directory is the system identity database. The passwd-file implementation
// is the production one; tests substitute an in-memory fake.
type Directory interface {
	// Lookup resolves a username. Returns ErrUnknownUser for missing names.
	Lookup(name string) (Identity, error)
	// GroupMembers returns the member usernames of a Unix group.
	// Returns ErrUnknownGroup for missing groups.
	GroupMembers(group string) ([]string, error)
	// Humans returns all accounts with UID >= 1000 and an interactive
	// login shell.
	Humans() ([]Identity, error)
}
