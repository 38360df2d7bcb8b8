package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type funcHandler struct {
	id        string
	eventType string
	handler   EventHandler
}

// EventBus delivers events synchronously, in subscription order. Subscribers
// run before function handlers; typed handlers run before TypeAll handlers.
// Handlers may subscribe or unsubscribe while an event is being delivered; the
// change applies from the next Publish.
type EventBus struct {
	mu           sync.RWMutex
	subscribers  []Subscriber
	funcHandlers []funcHandler
	nextID       int
	logger       zerolog.Logger
}

// NewEventBus creates a bus that logs through the global logger
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates a bus with its own logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. A subscriber with the same ID replaces the
// previous one in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber added")
}

// Unsubscribe removes a subscriber by ID
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriberID {
			eb.subscribers = append(eb.subscribers[:i:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed")
			return
		}
	}
}

// SubscribeFunc registers handler for eventType (or TypeAll) and returns an
// ID for UnsubscribeFunc.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eventType + "#" + strconv.Itoa(eb.nextID)
	eb.funcHandlers = append(eb.funcHandlers, funcHandler{id: id, eventType: eventType, handler: handler})
	return id
}

// UnsubscribeFunc removes a handler registered with SubscribeFunc. It reports
// whether the handler was found.
func (eb *EventBus) UnsubscribeFunc(id string) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, h := range eb.funcHandlers {
		if h.id == id {
			eb.funcHandlers = append(eb.funcHandlers[:i:i], eb.funcHandlers[i+1:]...)
			return true
		}
	}
	return false
}

// Publish delivers event to every interested subscriber and handler. A
// panicking receiver is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subscribers := make([]Subscriber, 0, len(eb.subscribers))
	for _, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			subscribers = append(subscribers, s)
		}
	}
	handlers := make([]funcHandler, 0, len(eb.funcHandlers))
	for _, h := range eb.funcHandlers {
		if h.eventType == eventType {
			handlers = append(handlers, h)
		}
	}
	for _, h := range eb.funcHandlers {
		if h.eventType == TypeAll && eventType != TypeAll {
			handlers = append(handlers, h)
		}
	}
	eb.mu.RUnlock()

	scope := event.Scope()
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("match_id", event.MatchID()).
		Int("player_id", scope.PlayerID).
		Int("turn", scope.Turn).
		Msg("Publishing event")

	for _, s := range subscribers {
		eb.deliver(s.ID(), event, s.HandleEvent)
	}
	for _, h := range handlers {
		eb.deliver(h.id, event, h.handler)
	}
}

func (eb *EventBus) deliver(receiver string, event Event, fn EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	fn(event)
}

// SubscriberCount returns the number of subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// HandlerCount returns the number of function handlers registered for eventType
func (eb *EventBus) HandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	n := 0
	for _, h := range eb.funcHandlers {
		if h.eventType == eventType {
			n++
		}
	}
	return n
}
