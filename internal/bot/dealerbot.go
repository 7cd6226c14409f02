package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// DealerBot plays the dealer's own rule: hit below 17 and on soft 17. It
// takes every free promotion and never pays for a split or double.
type DealerBot struct {
	Bettor
	logger *log.Logger
}

// NewDealerBot creates a new DealerBot instance
func NewDealerBot(bets game.Bets, logger *log.Logger) *DealerBot {
	return &DealerBot{Bettor: Bettor{Bets: bets}, logger: logger}
}

func (d *DealerBot) MakeDecision(ctx context.Context, state game.TableState, validActions []game.Action) (game.Decision, error) {
	if a, ok := takeFree(validActions); ok {
		return game.Decision{Action: a, Reasoning: "dealer-bot taking the free " + a.String()}, nil
	}

	hand := state.Active()
	if hand.Sum < 17 || (hand.Sum == 17 && hand.Soft) {
		return game.Decision{Action: game.Hit, Reasoning: "dealer-bot hitting below hard 17"}, nil
	}
	return game.Decision{Action: game.Stand, Reasoning: "dealer-bot standing"}, nil
}
