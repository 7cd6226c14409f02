// Package game implements the core blackjack rules and round engine.
//
// A Session owns the bankroll across rounds. Each Round takes bets from an
// Agent, deals from a fresh 52-card shoe, asks the Agent for a decision on
// every pending hand, plays the dealer out and settles the bankroll.
//
// # Basic Usage
//
//	session := game.NewSession(1000, 10)
//	result, err := session.PlayRound(ctx, agent)
//	if err != nil {
//	    // *InsufficientFundsError, *IllegalActionError, ErrAgentUnavailable...
//	}
//	fmt.Println(result.Net, result.Bankroll)
//
// # Deterministic Testing
//
// Rounds accept a stacked shoe so tests control every card:
//
//	shoe, _ := cards.NewStackedShoe(randutil.New(42), cards.MustParseCards("AsKh9d8c")...)
//	result, err := session.PlayRound(ctx, agent, game.WithShoe(shoe))
//
// Cards are dealt player, dealer, player, dealer, then drawn in order.
//
// # Money
//
// Stakes leave the bankroll when they are placed: the main and side bets at
// betting time, paid splits and doubles when they are taken. Settlement
// credits stake plus winnings for a win, the stake for a push and nothing for
// a loss. Free splits and doubles cost nothing and each earns a gold coin for
// the pot-of-gold side bet.
//
// # Events
//
// Every step is published on an EventBus. Displays subscribe to it; the
// dealer's hole card is only published once the dealer's turn begins.
package game
