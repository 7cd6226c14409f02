package game

import (
	"time"

	"github.com/lox/blackjack/cards"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for the round lifecycle
const (
	EventTypeRoundStart    EventType = "round_start"
	EventTypeBetsPlaced    EventType = "bets_placed"
	EventTypeDeal          EventType = "deal"
	EventTypePlayerAction  EventType = "player_action"
	EventTypeIllegalAction EventType = "illegal_action"
	EventTypeDealerReveal  EventType = "dealer_reveal"
	EventTypeDealerDraw    EventType = "dealer_draw"
	EventTypeHandResult    EventType = "hand_result"
	EventTypeRoundEnd      EventType = "round_end"
	EventTypeRoundVoid     EventType = "round_void"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a round that a display
// may want to render
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandView is a read-only snapshot of a hand
type HandView struct {
	Cards     []cards.Card
	Sum       int
	Soft      bool
	Wager     int
	Stake     int
	Finished  bool
	FromSplit bool
	Blackjack bool
}

// View returns a snapshot of the hand
func (h *Hand) View() HandView {
	sum, soft := h.SumSoft()
	return HandView{
		Cards:     h.Cards(),
		Sum:       sum,
		Soft:      soft,
		Wager:     h.wager,
		Stake:     h.stake,
		Finished:  h.Finished(),
		FromSplit: h.fromSplit,
		Blackjack: h.Blackjack(),
	}
}

// RoundStartEvent is published before bets are taken
type RoundStartEvent struct {
	RoundID    string
	Bankroll   int
	MinimumBet int
	timestamp  time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// BetsPlacedEvent is published once the sanitized bets have been debited
type BetsPlacedEvent struct {
	RoundID   string
	Main      int
	Side      int
	Bankroll  int
	timestamp time.Time
}

func (e BetsPlacedEvent) EventType() EventType { return EventTypeBetsPlaced }
func (e BetsPlacedEvent) Timestamp() time.Time { return e.timestamp }

// DealEvent is published after the initial deal. Only the dealer's up card is
// included; the hole card stays hidden until the dealer's turn.
type DealEvent struct {
	RoundID      string
	Player       HandView
	DealerUpCard cards.Card
	timestamp    time.Time
}

func (e DealEvent) EventType() EventType { return EventTypeDeal }
func (e DealEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published after an action has been applied to a hand
type PlayerActionEvent struct {
	RoundID   string
	HandIndex int
	Action    Action
	Reasoning string
	Hand      HandView
	Sibling   *HandView // set for splits
	Bankroll  int
	GoldCoins int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// IllegalActionEvent is published when the action source answers with an
// action outside the valid set
type IllegalActionEvent struct {
	RoundID   string
	HandIndex int
	Action    Action
	Valid     []Action
	Attempt   int
	timestamp time.Time
}

func (e IllegalActionEvent) EventType() EventType { return EventTypeIllegalAction }
func (e IllegalActionEvent) Timestamp() time.Time { return e.timestamp }

// DealerRevealEvent is published when the dealer turns over the hole card
type DealerRevealEvent struct {
	RoundID   string
	Dealer    HandView
	timestamp time.Time
}

func (e DealerRevealEvent) EventType() EventType { return EventTypeDealerReveal }
func (e DealerRevealEvent) Timestamp() time.Time { return e.timestamp }

// DealerDrawEvent is published for every card the dealer draws
type DealerDrawEvent struct {
	RoundID   string
	Card      cards.Card
	Dealer    HandView
	timestamp time.Time
}

func (e DealerDrawEvent) EventType() EventType { return EventTypeDealerDraw }
func (e DealerDrawEvent) Timestamp() time.Time { return e.timestamp }

// HandResultEvent is published for each settled player hand
type HandResultEvent struct {
	RoundID   string
	HandIndex int
	Result    HandResult
	timestamp time.Time
}

func (e HandResultEvent) EventType() EventType { return EventTypeHandResult }
func (e HandResultEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published once the bankroll has been settled
type RoundEndEvent struct {
	Result    RoundResult
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// RoundVoidEvent is published when a round fails after bets were taken and
// every stake has been refunded
type RoundVoidEvent struct {
	RoundID   string
	Reason    string
	Refund    int
	Bankroll  int
	timestamp time.Time
}

func (e RoundVoidEvent) EventType() EventType { return EventTypeRoundVoid }
func (e RoundVoidEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in publish order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be compared
// and are never removed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	if _, ok := subscriber.(EventSubscriberFunc); ok {
		return
	}
	for i, sub := range bus.subscribers {
		if _, ok := sub.(EventSubscriberFunc); ok {
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
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
