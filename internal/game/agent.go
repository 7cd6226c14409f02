package game

import (
	"context"

	"github.com/lox/blackjack/cards"
)

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Reasoning string // Human-readable explanation
}

// Bets is the stake a player asks to put down before the deal
type Bets struct {
	Main int
	Side int // pot-of-gold side bet, 0 to skip it
}

// BetState is the read-only state handed to an agent before the deal
type BetState struct {
	RoundID    string
	Bankroll   int
	MinimumBet int
}

// TableState represents the read-only state of the table for decision making.
// The dealer's hole card is never included.
type TableState struct {
	RoundID      string
	Bankroll     int
	MinimumBet   int
	MainBet      int
	SideBet      int
	GoldCoins    int
	Hands        []HandView
	ActiveHand   int // which hand in Hands the decision is for
	DealerUpCard cards.Card
}

// Active returns the hand the decision is for
func (s TableState) Active() HandView {
	return s.Hands[s.ActiveHand]
}

// Agent represents any entity (human or bot) that places bets and makes
// decisions for the player. Agents receive immutable state and return
// decisions; the round validates and applies them. Returning ErrQuit ends the
// session.
type Agent interface {
	PlaceBets(ctx context.Context, state BetState) (Bets, error)
	MakeDecision(ctx context.Context, state TableState, validActions []Action) (Decision, error)
}

// AgentFuncs adapts a pair of functions to Agent
type AgentFuncs struct {
	Bets   func(ctx context.Context, state BetState) (Bets, error)
	Decide func(ctx context.Context, state TableState, validActions []Action) (Decision, error)
}

// PlaceBets calls Bets
func (a AgentFuncs) PlaceBets(ctx context.Context, state BetState) (Bets, error) {
	if a.Bets == nil {
		return Bets{Main: state.MinimumBet}, nil
	}
	return a.Bets(ctx, state)
}

// MakeDecision calls Decide
func (a AgentFuncs) MakeDecision(ctx context.Context, state TableState, validActions []Action) (Decision, error) {
	if a.Decide == nil {
		return Decision{Action: Stand}, nil
	}
	return a.Decide(ctx, state, validActions)
}
