package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrHandFinished is returned when an action is applied to a finished hand
	ErrHandFinished = errors.New("hand is finished")

	// ErrCannotSplit is returned when splitting a hand that is not a pair
	ErrCannotSplit = errors.New("hand cannot be split")

	// ErrCannotDouble is returned when doubling a hand that is not a fresh two-card hand
	ErrCannotDouble = errors.New("hand cannot be doubled")

	// ErrAgentUnavailable is returned when the action source fails to answer
	ErrAgentUnavailable = errors.New("action source unavailable")

	// ErrQuit is returned by an agent that wants to leave the table
	ErrQuit = errors.New("player quit")

	// ErrRoundFinished is returned when a round is played twice
	ErrRoundFinished = errors.New("round already played")
)

// InsufficientFundsError is returned when the bankroll cannot cover the minimum bet
type InsufficientFundsError struct {
	Bankroll int
	Minimum  int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: bankroll $%d does not cover the $%d minimum", e.Bankroll, e.Minimum)
}

// IllegalActionError is returned when the action source keeps answering with
// actions outside the legal set
type IllegalActionError struct {
	Action   Action
	Valid    []Action
	Attempts int
}

func (e *IllegalActionError) Error() string {
	valid := make([]string, len(e.Valid))
	for i, a := range e.Valid {
		valid[i] = a.String()
	}
	return fmt.Sprintf("illegal action %q after %d attempts (valid: %s)", e.Action, e.Attempts, strings.Join(valid, ", "))
}
