package identity

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Shells that mark a non-login or service account.
var nologinShells = map[string]bool{
	"/usr/sbin/nologin": true,
	"/sbin/nologin":     true,
	"/bin/false":        true,
	"/usr/bin/false":    true,
}

// PasswdDirectory reads identities from the passwd and group files. The
// zero value uses /etc/passwd and /etc/group.
type PasswdDirectory struct {
	PasswdPath string
	GroupPath  string
}

func (d *PasswdDirectory) passwdPath() string {
	if d.PasswdPath != "" {
		return d.PasswdPath
	}
	return "/etc/passwd"
}

func (d *PasswdDirectory) groupPath() string {
	if d.GroupPath != "" {
		return d.GroupPath
	}
	return "/etc/group"
}

// Lookup resolves a username against the passwd file.
func (d *PasswdDirectory) Lookup(name string) (Identity, error) {
	var found Identity
	ok := false
	err := forEachLine(d.passwdPath(), func(fields []string) {
		if len(fields) >= 7 && fields[0] == name {
			if id, err := parsePasswdEntry(fields); err == nil {
				found, ok = id, true
			}
		}
	})
	if err != nil {
		return Identity{}, err
	}
	if !ok {
		return Identity{}, fmt.Errorf("%w: %s", ErrUnknownUser, name)
	}
	return found, nil
}

// GroupMembers returns the supplementary member list of a group.
func (d *PasswdDirectory) GroupMembers(group string) ([]string, error) {
	var members []string
	ok := false
	err := forEachLine(d.groupPath(), func(fields []string) {
		// name:password:gid:member,member
		if len(fields) >= 4 && fields[0] == group {
			ok = true
			for _, m := range strings.Split(fields[3], ",") {
				if m != "" {
					members = append(members, m)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}
	return members, nil
}

// Humans returns every account with UID >= 1000 and a login shell.
func (d *PasswdDirectory) Humans() ([]Identity, error) {
	var out []Identity
	err := forEachLine(d.passwdPath(), func(fields []string) {
		if len(fields) < 7 {
			return
		}
		id, err := parsePasswdEntry(fields)
		if err != nil {
			return
		}
		if id.UID >= 1000 && id.Shell != "" && !nologinShells[id.Shell] {
			out = append(out, id)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parsePasswdEntry(fields []string) (Identity, error) {
	// name:password:uid:gid:gecos:home:shell
	uid, err := strconv.Atoi(fields[2])
	if err != nil {
		return Identity{}, fmt.Errorf("bad uid for %s: %w", fields[0], err)
	}
	gid, err := strconv.Atoi(fields[3])
	if err != nil {
		return Identity{}, fmt.Errorf("bad gid for %s: %w", fields[0], err)
	}
	return Identity{
		Name:  fields[0],
		UID:   uid,
		GID:   gid,
		Home:  fields[5],
		Shell: fields[6],
	}, nil
}

func forEachLine(path string, fn func(fields []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(strings.Split(line, ":"))
	}
	return scanner.Err()
}
