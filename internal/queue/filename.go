package queue

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Ext is the queue entry file extension.
const Ext = ".json"

// NewEntryName generates a unique, chronologically sortable entry filename:
// <seconds>.<microseconds>_<4-hex-random><ext>. The timestamp orders entries
// across independent senders; the random suffix breaks same-microsecond
// collisions without coordination.
func NewEntryName(now time.Time) string {
	var buf [2]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand on Linux cannot fail once the pool is initialized.
		panic(err)
	}
	return fmt.Sprintf("%d.%06d_%s%s",
		now.Unix(), now.Nanosecond()/1000, hex.EncodeToString(buf[:]), Ext)
}

// IsEntryName reports whether a directory entry name looks like a queue
// entry. Dot-prefixed names (temp files, the history subdirectory) and
// foreign extensions are not entries.
func IsEntryName(name string) bool {
	return name != "" && !strings.HasPrefix(name, ".") && strings.HasSuffix(name, Ext)
}
