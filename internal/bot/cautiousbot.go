package bot

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// CautiousBot never risks a bust: it stands on any 12 or more it could break
type CautiousBot struct {
	Bettor
	logger *log.Logger
}

// NewCautiousBot creates a new CautiousBot instance
func NewCautiousBot(bets game.Bets, logger *log.Logger) *CautiousBot {
	return &CautiousBot{Bettor: Bettor{Bets: bets}, logger: logger}
}

func (c *CautiousBot) MakeDecision(ctx context.Context, state game.TableState, validActions []game.Action) (game.Decision, error) {
	if a, ok := takeFree(validActions); ok {
		return game.Decision{Action: a, Reasoning: "cautious-bot taking the free " + a.String()}, nil
	}

	hand := state.Active()
	if hand.Sum >= 12 && !hand.Soft {
		return game.Decision{Action: game.Stand, Reasoning: "cautious-bot could bust"}, nil
	}
	if hand.Sum >= 18 {
		return game.Decision{Action: game.Stand, Reasoning: "cautious-bot standing on soft 18+"}, nil
	}
	return game.Decision{Action: game.Hit, Reasoning: "cautious-bot hitting safely"}, nil
}
