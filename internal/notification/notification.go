package notification

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Urgency is the desktop notification urgency level.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyNormal   Urgency = "normal"
	UrgencyCritical Urgency = "critical"
)

// TimeoutServerDefault tells the notification server to use its own display
// timeout. A timeout of 0 makes the notification persistent.
const TimeoutServerDefault = -1

// ErrMalformed is returned by Parse when a queue entry cannot be decoded
// into a valid notification.
var ErrMalformed = errors.New("malformed notification")

// Notification is an immutable message delivered to a user's session.
type Notification struct {
	Title   string  `json:"title"`
	Body    string  `json:"body"`
	Urgency Urgency `json:"urgency"`
	Icon    string  `json:"icon"`
	// Timeout is the display timeout in milliseconds. -1 means the
	// notification server's default, 0 means persistent.
	Timeout int `json:"timeout"`
}

// New returns a notification with defaults applied.
func New(title string) Notification {
	return Notification{
		Title:   title,
		Urgency: UrgencyNormal,
		Timeout: TimeoutServerDefault,
	}
}

// ParseUrgency maps a string to an Urgency. Unknown values are invalid;
// use Normalize on parsed notifications for the lenient mapping.
func ParseUrgency(s string) (Urgency, error) {
	switch Urgency(s) {
	case UrgencyLow, UrgencyNormal, UrgencyCritical:
		return Urgency(s), nil
	}
	return "", fmt.Errorf("invalid urgency %q (must be low, normal, or critical)", s)
}

// Byte returns the org.freedesktop.Notifications urgency hint byte.
func (u Urgency) Byte() byte {
	switch u {
	case UrgencyLow:
		return 0
	case UrgencyCritical:
		return 2
	default:
		return 1
	}
}

// Validate reports why a notification is not deliverable.
func (n Notification) Validate() error {
	if n.Title == "" {
		return fmt.Errorf("%w: missing title", ErrMalformed)
	}
	return nil
}

// Marshal encodes the notification in the queue entry wire format.
func (n Notification) Marshal() ([]byte, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

// Parse decodes a queue entry. Unknown fields are ignored for forward
// compatibility and an out-of-range urgency falls back to normal; a missing
// or empty title is the only hard failure besides undecodable input.
func Parse(data []byte) (Notification, error) {
	if !gjson.ValidBytes(data) {
		return Notification{}, fmt.Errorf("%w: not valid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Notification{}, fmt.Errorf("%w: not an object", ErrMalformed)
	}

	n := Notification{
		Title:   root.Get("title").String(),
		Body:    root.Get("body").String(),
		Icon:    root.Get("icon").String(),
		Urgency: UrgencyNormal,
		Timeout: TimeoutServerDefault,
	}
	if err := n.Validate(); err != nil {
		return Notification{}, err
	}

	if u, err := ParseUrgency(root.Get("urgency").String()); err == nil {
		n.Urgency = u
	}
	if t := root.Get("timeout"); t.Exists() {
		n.Timeout = int(t.Int())
	}
	return n, nil
}
