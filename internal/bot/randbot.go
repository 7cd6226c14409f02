package bot

import (
	"context"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	Bettor
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(bets game.Bets, rng *rand.Rand, logger *log.Logger) *RandBot {
	if rng == nil {
		panic("rng is required for rand-bot")
	}
	return &RandBot{Bettor: Bettor{Bets: bets}, rng: rng, logger: logger}
}

func (r *RandBot) MakeDecision(ctx context.Context, state game.TableState, validActions []game.Action) (game.Decision, error) {
	if len(validActions) == 0 {
		return game.Decision{Action: game.Stand, Reasoning: "rand-bot no valid actions"}, nil
	}
	return game.Decision{Action: validActions[r.rng.IntN(len(validActions))], Reasoning: "rand-bot random action"}, nil
}
