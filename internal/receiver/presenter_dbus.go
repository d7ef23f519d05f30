package receiver

import (
	"fmt"
	"time"

	"github.com/0443n/herald/internal/notification"
	"github.com/esiqveland/notify"
	"github.com/godbus/dbus/v5"
)

// DBusPresenter shows notifications through org.freedesktop.Notifications
// on the session bus.
type DBusPresenter struct {
	conn *dbus.Conn
}

// NewDBusPresenter connects to the session bus.
func NewDBusPresenter() (*DBusPresenter, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}
	return &DBusPresenter{conn: conn}, nil
}

// Present issues the Notify call.
func (p *DBusPresenter) Present(n notification.Notification) error {
	_, err := notify.SendNotification(p.conn, notify.Notification{
		AppName: "herald",
		AppIcon: n.Icon,
		Summary: n.Title,
		Body:    n.Body,
		Hints: map[string]dbus.Variant{
			"urgency":       dbus.MakeVariant(n.Urgency.Byte()),
			"desktop-entry": dbus.MakeVariant("herald"),
		},
		ExpireTimeout: expireTimeout(n.Timeout),
	})
	return err
}

// Close releases the bus connection.
func (p *DBusPresenter) Close() error {
	return p.conn.Close()
}

func expireTimeout(ms int) time.Duration {
	if ms < 0 {
		return notify.ExpireTimeoutSetByNotificationServer
	}
	return time.Duration(ms) * time.Millisecond
}
