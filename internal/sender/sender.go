// Package sender writes notification entries into recipients' queues.
package sender

import (
	"log/slog"

	"github.com/0443n/herald/internal/identity"
	"github.com/0443n/herald/internal/notification"
	"github.com/0443n/herald/internal/queue"
)

// Sender delivers one notification per recipient. It is synchronous and
// keeps no state between calls; concurrent senders are safe because every
// placement is an atomic rename under a unique name.
type Sender struct {
	Store *queue.Store
}

// Send places the notification in each recipient's queue and returns how
// many placements succeeded. A failure for one recipient is logged and
// never stops the rest.
func (s *Sender) Send(n notification.Notification, recipients []identity.Identity) int {
	delivered := 0
	for _, id := range recipients {
		if err := s.Store.EnsureUserDir(id); err != nil {
			slog.Error("Failed to prepare queue directory", "user", id.Name, "err", err)
			continue
		}
		entry, err := s.Store.Place(id, n)
		if err != nil {
			slog.Error("Failed to place notification", "user", id.Name, "err", err)
			continue
		}
		slog.Debug("Placed notification", "user", id.Name, "entry", entry)
		delivered++
	}
	return delivered
}
