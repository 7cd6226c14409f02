// Package bot provides automatic players for the blackjack engine. They sit
// in the player's seat and are used by the simulator and for autoplay.
package bot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// Bettor places the same bets every round
type Bettor struct {
	Bets game.Bets
}

// PlaceBets implements game.Agent
func (b Bettor) PlaceBets(ctx context.Context, state game.BetState) (game.Bets, error) {
	bets := b.Bets
	if bets.Main <= 0 {
		bets.Main = state.MinimumBet
	}
	return bets, nil
}

// Factory creates a bot
type Factory func(bets game.Bets, rng *rand.Rand, logger *log.Logger) game.Agent

var registry = map[string]Factory{
	"dealer": func(bets game.Bets, _ *rand.Rand, logger *log.Logger) game.Agent {
		return NewDealerBot(bets, logger)
	},
	"cautious": func(bets game.Bets, _ *rand.Rand, logger *log.Logger) game.Agent {
		return NewCautiousBot(bets, logger)
	},
	"basic": func(bets game.Bets, _ *rand.Rand, logger *log.Logger) game.Agent {
		return NewBasicBot(bets, logger)
	},
	"random": func(bets game.Bets, rng *rand.Rand, logger *log.Logger) game.Agent {
		return NewRandBot(bets, rng, logger)
	},
}

// Strategies lists the registered bot names
func Strategies() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the named bot
func New(name string, bets game.Bets, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, Strategies())
	}
	return factory(bets, rng, logger), nil
}

// takeFree returns a free promotion from the valid set, if any
func takeFree(validActions []game.Action) (game.Action, bool) {
	for _, a := range validActions {
		if a.IsFree() {
			return a, true
		}
	}
	return 0, false
}
