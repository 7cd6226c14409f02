package bot

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
)

// BasicBot follows a compact basic strategy chart keyed on the player total
// and the dealer's up card. Free promotions are always taken; paid splits only
// ever apply to ten-value pairs and are never taken.
type BasicBot struct {
	Bettor
	logger *log.Logger
}

// NewBasicBot creates a new BasicBot instance
func NewBasicBot(bets game.Bets, logger *log.Logger) *BasicBot {
	return &BasicBot{Bettor: Bettor{Bets: bets}, logger: logger.WithPrefix("basic-bot")}
}

func (b *BasicBot) MakeDecision(ctx context.Context, state game.TableState, validActions []game.Action) (game.Decision, error) {
	if a, ok := takeFree(validActions); ok {
		return game.Decision{Action: a, Reasoning: "basic-bot taking the free " + a.String()}, nil
	}

	hand := state.Active()
	up := state.DealerUpCard.Value()
	action, reason := chart(hand.Sum, hand.Soft, up)

	if action == game.Double && !slices.Contains(validActions, game.Double) {
		action, reason = game.Hit, "basic-bot would double, hitting instead"
	}

	b.logger.Debug("Chart decision", "sum", hand.Sum, "soft", hand.Soft, "up", up, "action", action)
	return game.Decision{Action: action, Reasoning: reason}, nil
}

// chart returns the basic strategy play for a total against the dealer's up
// card value (2-11)
func chart(sum int, soft bool, up int) (game.Action, string) {
	weakDealer := up >= 2 && up <= 6

	if soft {
		switch {
		case sum >= 19:
			return game.Stand, "basic-bot standing on soft 19+"
		case sum >= 13 && (up == 5 || up == 6):
			return game.Double, "basic-bot doubling soft hand against 5 or 6"
		case sum == 18 && up <= 8:
			return game.Stand, "basic-bot standing on soft 18"
		default:
			return game.Hit, "basic-bot hitting soft hand"
		}
	}

	switch {
	case sum >= 17:
		return game.Stand, "basic-bot standing on hard 17+"
	case (sum == 10 || sum == 11) && up < sum:
		return game.Double, "basic-bot doubling 10 or 11"
	case sum >= 13 && weakDealer:
		return game.Stand, "basic-bot standing against a weak dealer"
	case sum == 12 && up >= 4 && up <= 6:
		return game.Stand, "basic-bot standing on 12 against 4-6"
	default:
		return game.Hit, "basic-bot hitting"
	}
}
