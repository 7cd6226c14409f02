package game

import (
	"fmt"
	"slices"
	"strings"
)

// Action is a player decision. Free and paid splits and doubles are distinct
// members so that a decision always says which one it means.
type Action uint8

const (
	Hit Action = iota + 1
	Stand
	Split
	FreeSplit
	Double
	FreeDouble
)

// String returns the canonical name of the action
func (a Action) String() string {
	switch a {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Split:
		return "split"
	case FreeSplit:
		return "free-split"
	case Double:
		return "double"
	case FreeDouble:
		return "free-double"
	default:
		return "unknown"
	}
}

// Shortcut returns the short command used at the prompt
func (a Action) Shortcut() string {
	switch a {
	case Hit:
		return "h"
	case Stand:
		return "s"
	case Split:
		return "p"
	case FreeSplit:
		return "fp"
	case Double:
		return "d"
	case FreeDouble:
		return "fd"
	default:
		return "?"
	}
}

// IsFree reports a promotional action that needs no extra stake
func (a Action) IsFree() bool {
	return a == FreeSplit || a == FreeDouble
}

// IsSplit reports either kind of split
func (a Action) IsSplit() bool {
	return a == Split || a == FreeSplit
}

// IsDouble reports either kind of double
func (a Action) IsDouble() bool {
	return a == Double || a == FreeDouble
}

// ParseAction converts user input into an action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "hit":
		return Hit, nil
	case "s", "stand", "stay":
		return Stand, nil
	case "p", "split":
		return Split, nil
	case "fp", "free-split", "freesplit", "free_split":
		return FreeSplit, nil
	case "d", "double":
		return Double, nil
	case "fd", "free-double", "freedouble", "free_double":
		return FreeDouble, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// ValidActions returns the legal actions for a pending hand given the bankroll
// available for paid splits and doubles. Stand and hit are always legal; a free
// split or double replaces the paid one when the hand qualifies.
func ValidActions(h *Hand, bankroll int) []Action {
	if h.Finished() {
		return nil
	}

	actions := []Action{Stand, Hit}

	switch {
	case h.CanFreeSplit():
		actions = append(actions, FreeSplit)
	case h.CanSplit() && bankroll >= h.Wager():
		actions = append(actions, Split)
	}

	switch {
	case h.CanFreeDouble():
		actions = append(actions, FreeDouble)
	case h.CanDouble() && bankroll >= h.Wager():
		actions = append(actions, Double)
	}

	return actions
}

// IsValidAction reports whether action is in the valid set
func IsValidAction(action Action, valid []Action) bool {
	return slices.Contains(valid, action)
}
