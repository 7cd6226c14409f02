package game

import (
	"context"

	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/randutil"
)

// ScriptedAgent places fixed bets and answers decisions from a script. Once
// the script runs out it stands.
type ScriptedAgent struct {
	bets    Bets
	actions []Action
	index   int

	// Offered records the valid action set of every decision request
	Offered [][]Action
	// States records the table state of every decision request
	States []TableState
}

// NewScriptedAgent creates an agent that bets bets and plays actions in order
func NewScriptedAgent(bets Bets, actions ...Action) *ScriptedAgent {
	return &ScriptedAgent{bets: bets, actions: actions}
}

// PlaceBets returns the scripted bets
func (a *ScriptedAgent) PlaceBets(ctx context.Context, state BetState) (Bets, error) {
	return a.bets, nil
}

// MakeDecision returns the next scripted action
func (a *ScriptedAgent) MakeDecision(ctx context.Context, state TableState, validActions []Action) (Decision, error) {
	a.Offered = append(a.Offered, validActions)
	a.States = append(a.States, state)

	if a.index >= len(a.actions) {
		return Decision{Action: Stand, Reasoning: "script exhausted"}, nil
	}

	action := a.actions[a.index]
	a.index++
	return Decision{Action: action, Reasoning: "scripted"}, nil
}

// Decisions returns how many decisions were requested
func (a *ScriptedAgent) Decisions() int {
	return len(a.Offered)
}

// NewTestShoe stacks a shoe from card notation, e.g. "AsKh9d8c". Cards are
// dealt player, dealer, player, dealer and then drawn in order. It panics on
// bad notation.
func NewTestShoe(notation string) *cards.Shoe {
	shoe, err := cards.NewStackedShoe(randutil.New(42), cards.MustParseCards(notation)...)
	if err != nil {
		panic(err)
	}
	return shoe
}
