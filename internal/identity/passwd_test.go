package identity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testPasswd = `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
svc:x:999:999::/var/lib/svc:/bin/bash
alice:x:1000:1000:Alice:/home/alice:/bin/bash
bob:x:1001:1001::/home/bob:/bin/zsh
printer:x:1002:1002::/var/spool:/usr/sbin/nologin
ghost:x:1003:1003::/home/ghost:/bin/false
`

const testGroup = `root:x:0:
devs:x:500:alice,bob
empty:x:501:
`

func testDirectory(t *testing.T) *PasswdDirectory {
	t.Helper()
	dir := t.TempDir()
	passwd := filepath.Join(dir, "passwd")
	group := filepath.Join(dir, "group")
	if err := os.WriteFile(passwd, []byte(testPasswd), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(group, []byte(testGroup), 0o644); err != nil {
		t.Fatal(err)
	}
	return &PasswdDirectory{PasswdPath: passwd, GroupPath: group}
}

func TestLookup(t *testing.T) {
	d := testDirectory(t)

	t.Run("known user", func(t *testing.T) {
		id, err := d.Lookup("alice")
		if err != nil {
			t.Fatalf("Lookup failed: %v", err)
		}
		want := Identity{Name: "alice", UID: 1000, GID: 1000, Home: "/home/alice", Shell: "/bin/bash"}
		if id != want {
			t.Errorf("got %+v, want %+v", id, want)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := d.Lookup("nobody-here"); !errors.Is(err, ErrUnknownUser) {
			t.Errorf("expected ErrUnknownUser, got %v", err)
		}
	})
}

func TestGroupMembers(t *testing.T) {
	d := testDirectory(t)

	t.Run("group with members", func(t *testing.T) {
		members, err := d.GroupMembers("devs")
		if err != nil {
			t.Fatalf("GroupMembers failed: %v", err)
		}
		if len(members) != 2 || members[0] != "alice" || members[1] != "bob" {
			t.Errorf("unexpected members: %v", members)
		}
	})

	t.Run("empty member list", func(t *testing.T) {
		members, err := d.GroupMembers("empty")
		if err != nil {
			t.Fatalf("GroupMembers failed: %v", err)
		}
		if len(members) != 0 {
			t.Errorf("expected no members, got %v", members)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		if _, err := d.GroupMembers("nosuch"); !errors.Is(err, ErrUnknownGroup) {
			t.Errorf("expected ErrUnknownGroup, got %v", err)
		}
	})
}

func TestHumans(t *testing.T) {
	d := testDirectory(t)
	humans, err := d.Humans()
	if err != nil {
		t.Fatalf("Humans failed: %v", err)
	}
	names := make(map[string]bool)
	for _, id := range humans {
		names[id.Name] = true
	}
	// UID >= 1000 with an interactive shell: alice and bob only. root and
	// svc fail the UID check; printer and ghost have service shells.
	if len(names) != 2 || !names["alice"] || !names["bob"] {
		t.Errorf("unexpected human set: %v", names)
	}
}
