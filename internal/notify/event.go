// Package notify fans group activity out to members: one stored
// notification per recipient, plus an event on the message broker for
// push delivery.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Event is the broker message for one piece of group activity.
type Event struct {
	Type       string    `json:"type"`
	GroupID    int64     `json:"groupId"`
	MemberIDs  []int64   `json:"memberIds"`
	ResourceID int64     `json:"resourceId"`
	Message    string    `json:"message"`
	At         time.Time `json:"at"`
}

// RoutingKey is "group.<id>.<type>" in lower case, so consumers can bind
// per group or per event type.
func (e Event) RoutingKey() string {
	return fmt.Sprintf("group.%d.%s", e.GroupID, strings.ToLower(e.Type))
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event published by a Publisher.
func EventFromJSON(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Publisher delivers events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
