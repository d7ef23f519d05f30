package receiver

import (
	"github.com/0443n/herald/internal/notification"
	"github.com/gen2brain/beeep"
)

// BeeepPresenter is the fallback presenter for sessions without a D-Bus
// session bus; it goes through beeep's platform notification backends.
// Urgency and timeout are not supported on this path.
type BeeepPresenter struct{}

// Present shows the notification.
func (BeeepPresenter) Present(n notification.Notification) error {
	return beeep.Notify(n.Title, n.Body, n.Icon)
}
