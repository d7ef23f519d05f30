package fileutil

import "strings"

// IsSafeName reports whether name is usable as a single path component
// under a controlled directory: non-empty, no separators, not "." or "..",
// and not hidden. Queue directories are named after users, and user names
// come from the identity database, but the base directory is root-writable
// state so names are checked again before any path is built from them.
func IsSafeName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, "/\x00")
}
