package events

import (
	"time"
)

// Event is anything published on the bus during a match.
type Event interface {
	Type() string
	Timestamp() time.Time
	MatchID() string
	// Scope is the player and turn the event belongs to. Match-wide events
	// return the zero value.
	Scope() EventMetadata
}

// EventMetadata ties an event to a player and turn.
type EventMetadata struct {
	PlayerID int `json:"player_id,omitempty"`
	Turn     int `json:"turn,omitempty"`
}

// BaseEvent is embedded by every concrete event.
type BaseEvent struct {
	EventType string        `json:"type"`
	Time      time.Time     `json:"timestamp"`
	Match     string        `json:"match_id"`
	Metadata  EventMetadata `json:"metadata"`
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) MatchID() string      { return e.Match }
func (e BaseEvent) Scope() EventMetadata { return e.Metadata }

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber receives the events it declares interest in.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is what producers of events depend on. The state machine and the
// engine only publish.
type Publisher interface {
	Publish(Event)
}

// TypeSet is a set of event types. An empty set, or one containing TypeAll,
// matches every type.
type TypeSet map[string]bool

// NewTypeSet builds a set from the given types.
func NewTypeSet(types ...string) TypeSet {
	if len(types) == 0 {
		return nil
	}
	s := make(TypeSet, len(types))
	for _, t := range types {
		s[t] = true
	}
	return s
}

// Matches reports whether eventType is in the set.
func (s TypeSet) Matches(eventType string) bool {
	return len(s) == 0 || s[TypeAll] || s[eventType]
}
