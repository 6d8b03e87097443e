package changefeed

import (
	"time"

	"github.com/google/uuid"
)

// Op names the kind of row change behind an Event.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event only signals that something changed. Consumers re-read the store
// instead of trusting any payload.
type Event struct {
	ID     string    `msgpack:"id" json:"id"`
	Op     Op        `msgpack:"op" json:"op"`
	UUID   string    `msgpack:"uuid" json:"uuid"`
	Source string    `msgpack:"source" json:"source"`
	At     time.Time `msgpack:"at" json:"at"`
}

// NewEvent stamps a change with a fresh ID.
func NewEvent(op Op, playerUUID, source string, at time.Time) Event {
	return Event{
		ID:     uuid.NewString(),
		Op:     op,
		UUID:   playerUUID,
		Source: source,
		At:     at,
	}
}

// subscriberBuffer is how many events a slow subscriber may lag behind
// before the broker starts dropping for it.
const subscriberBuffer = 16
