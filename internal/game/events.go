package game

import (
	"sync"
	"time"

	"github.com/lox/holdem/poker"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart      EventType = "hand_start"
	EventTypeBlindsPosted   EventType = "blinds_posted"
	EventTypeHoleCardsDealt EventType = "hole_cards_dealt"
	EventTypeStreetStart    EventType = "street_start"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeIllegalAction  EventType = "illegal_action"
	EventTypeStreetComplete EventType = "street_complete"
	EventTypeShowdown       EventType = "showdown"
	EventTypePotAwarded     EventType = "pot_awarded"
	EventTypeHandEnd        EventType = "hand_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a hand. Every event
// carries a snapshot of the table taken when it was published.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
	Snapshot() Snapshot
}

type eventBase struct {
	at       time.Time
	snapshot Snapshot
}

func (e eventBase) Timestamp() time.Time { return e.at }
func (e eventBase) Snapshot() Snapshot   { return e.snapshot }

// HandStartEvent is published after the hand is reset and the button placed
type HandStartEvent struct {
	eventBase
	HandID string
	Number int
	Dealer int
}

func (HandStartEvent) EventType() EventType { return EventTypeHandStart }

// BlindsPostedEvent is published once both blinds are in
type BlindsPostedEvent struct {
	eventBase
	SmallBlindSeat int
	SmallBlind     int
	BigBlindSeat   int
	BigBlind       int
}

func (BlindsPostedEvent) EventType() EventType { return EventTypeBlindsPosted }

// HoleCardsDealtEvent is published after each participant has two cards
type HoleCardsDealtEvent struct {
	eventBase
}

func (HoleCardsDealtEvent) EventType() EventType { return EventTypeHoleCardsDealt }

// StreetStartEvent is published before the first action of a street
type StreetStartEvent struct {
	eventBase
	Street Street
	Board  []poker.Card
}

func (StreetStartEvent) EventType() EventType { return EventTypeStreetStart }

// PlayerActionEvent is published after an action is applied
type PlayerActionEvent struct {
	eventBase
	Seat      int
	Player    string
	Street    Street
	Action    Action
	Committed int
	Reasoning string
	PotAfter  int
}

func (PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }

// IllegalActionEvent is published when an action is refused
type IllegalActionEvent struct {
	eventBase
	Seat    int
	Player  string
	Action  Action
	Reason  string
	Attempt int
}

func (IllegalActionEvent) EventType() EventType { return EventTypeIllegalAction }

// StreetCompleteEvent is published after bets are collected
type StreetCompleteEvent struct {
	eventBase
	Street Street
	Pot    int
}

func (StreetCompleteEvent) EventType() EventType { return EventTypeStreetComplete }

// ShowdownEvent is published once winners are known
type ShowdownEvent struct {
	eventBase
	Result ShowdownResult
}

func (ShowdownEvent) EventType() EventType { return EventTypeShowdown }

// PotAwardedEvent is published after chips are paid out
type PotAwardedEvent struct {
	eventBase
	Awards []Award
}

func (PotAwardedEvent) EventType() EventType { return EventTypePotAwarded }

// HandEndEvent is published last, with the full result
type HandEndEvent struct {
	eventBase
	Result *HandResult
}

func (HandEndEvent) EventType() EventType { return EventTypeHandEnd }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be
// compared and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(SubscriberFunc); ok {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if _, ok := sub.(SubscriberFunc); ok {
			continue
		}
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := append([]EventSubscriber(nil), bus.subscribers...)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}

// EventRecorder keeps every event it sees, mostly for tests and replay
type EventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *EventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns the recorded events in publish order
func (r *EventRecorder) Events() []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GameEvent(nil), r.events...)
}

// Types returns the type of each recorded event
func (r *EventRecorder) Types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}
