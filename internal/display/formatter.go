// Package display renders round events as human readable lines for the
// terminal. It only sees what the engine publishes, so the dealer's hole card
// cannot appear before the dealer's turn.
package display

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/game"
)

// Options controls how events are formatted
type Options struct {
	ShowReasoning bool // include the action source's reasoning
	ShowRoundID   bool
}

// Formatter turns game events into display strings
type Formatter struct {
	opts   Options
	styles Styles
}

// NewFormatter creates a formatter with the default styles
func NewFormatter(opts Options) *Formatter {
	return &Formatter{opts: opts, styles: DefaultStyles()}
}

// FormatEvent renders an event. Events with nothing to show render as "".
func (f *Formatter) FormatEvent(event game.GameEvent) string {
	switch e := event.(type) {
	case game.RoundStartEvent:
		return f.formatRoundStart(e)
	case game.BetsPlacedEvent:
		return f.formatBetsPlaced(e)
	case game.DealEvent:
		return f.formatDeal(e)
	case game.PlayerActionEvent:
		return f.formatPlayerAction(e)
	case game.IllegalActionEvent:
		return f.styles.Warning.Render(fmt.Sprintf("%s is not allowed here (valid: %s)",
			e.Action, f.FormatActions(e.Valid)))
	case game.DealerRevealEvent:
		return fmt.Sprintf("Dealer reveals: %s", f.FormatHand(e.Dealer))
	case game.DealerDrawEvent:
		return fmt.Sprintf("Dealer draws %s: %s", f.FormatCard(e.Card), f.FormatHand(e.Dealer))
	case game.HandResultEvent:
		return f.formatHandResult(e)
	case game.RoundEndEvent:
		return f.formatRoundEnd(e.Result)
	case game.RoundVoidEvent:
		return f.styles.Error.Render(fmt.Sprintf("Round void: %s. Refunded $%d, bankroll $%d",
			e.Reason, e.Refund, e.Bankroll))
	default:
		return ""
	}
}

func (f *Formatter) formatRoundStart(e game.RoundStartEvent) string {
	title := "New round"
	if f.opts.ShowRoundID && e.RoundID != "" {
		title = "Round " + e.RoundID
	}
	return fmt.Sprintf("%s • bankroll %s • minimum %s",
		f.styles.Header.Render(" "+title+" "), f.FormatMoney(e.Bankroll), f.FormatMoney(e.MinimumBet))
}

func (f *Formatter) formatBetsPlaced(e game.BetsPlacedEvent) string {
	text := fmt.Sprintf("Bet %s", f.FormatMoney(e.Main))
	if e.Side > 0 {
		text += fmt.Sprintf(", pot of gold %s", f.FormatMoney(e.Side))
	}
	return text + fmt.Sprintf(" (bankroll %s)", f.FormatMoney(e.Bankroll))
}

func (f *Formatter) formatDeal(e game.DealEvent) string {
	return fmt.Sprintf("Dealer shows %s %s\nYou have %s",
		f.FormatCard(e.DealerUpCard), f.styles.Hidden.Render("[??]"), f.FormatHand(e.Player))
}

func (f *Formatter) formatPlayerAction(e game.PlayerActionEvent) string {
	var b strings.Builder

	switch {
	case e.Action == game.Stand:
		fmt.Fprintf(&b, "Hand %d stands on %s", e.HandIndex+1, f.formatTotal(e.Hand))
	case e.Action.IsSplit():
		fmt.Fprintf(&b, "Hand %d %s: %s", e.HandIndex+1, f.describe(e.Action), f.FormatHand(e.Hand))
		if e.Sibling != nil {
			fmt.Fprintf(&b, " | %s", f.FormatHand(*e.Sibling))
		}
	default:
		fmt.Fprintf(&b, "Hand %d %s: %s", e.HandIndex+1, f.describe(e.Action), f.FormatHand(e.Hand))
	}

	if e.Action.IsFree() {
		fmt.Fprintf(&b, " %s", f.styles.Gold.Render(fmt.Sprintf("[%d gold]", e.GoldCoins)))
	}
	if f.opts.ShowReasoning && e.Reasoning != "" {
		fmt.Fprintf(&b, " (%s)", e.Reasoning)
	}
	return b.String()
}

func (f *Formatter) describe(a game.Action) string {
	switch a {
	case game.Hit:
		return "hits"
	case game.Split:
		return "splits"
	case game.FreeSplit:
		return "splits for free"
	case game.Double:
		return "doubles"
	case game.FreeDouble:
		return "doubles for free"
	default:
		return a.String()
	}
}

func (f *Formatter) formatHandResult(e game.HandResultEvent) string {
	r := e.Result
	line := fmt.Sprintf("Hand %d (%s, %d): %s", e.HandIndex+1, f.FormatCards(r.Cards), r.Sum, f.FormatOutcome(r.Outcome))
	switch {
	case r.Outcome.Won():
		line += " " + f.styles.Success.Render(fmt.Sprintf("+$%d", r.Winnings))
	case r.Outcome.Lost() && r.Stake > 0:
		line += " " + f.styles.Error.Render(fmt.Sprintf("-$%d", r.Stake))
	}
	return line
}

func (f *Formatter) formatRoundEnd(r game.RoundResult) string {
	var b strings.Builder

	if r.SideBet > 0 {
		if r.SideBetCredit > 0 {
			fmt.Fprintf(&b, "%s\n", f.styles.Gold.Render(fmt.Sprintf("Pot of gold: %d coins pays %dx, $%d",
				r.GoldCoins, game.PotOfGoldMultiplier(r.GoldCoins), r.SideBetCredit)))
		} else {
			fmt.Fprintf(&b, "Pot of gold: no coins, side bet of %s lost\n", f.FormatMoney(r.SideBet))
		}
	}

	net := f.FormatMoney(r.Net)
	switch {
	case r.Net > 0:
		net = f.styles.Success.Render(fmt.Sprintf("+$%d", r.Net))
	case r.Net < 0:
		net = f.styles.Error.Render(fmt.Sprintf("-$%d", -r.Net))
	}
	fmt.Fprintf(&b, "Round over: %s, bankroll %s", net, f.FormatMoney(r.Bankroll))

	if !r.CanContinue {
		fmt.Fprintf(&b, "\n%s", f.styles.Warning.Render("Not enough money for another round"))
	}
	return b.String()
}

// FormatCard renders a card in its suit colour
func (f *Formatter) FormatCard(c cards.Card) string {
	if c.IsRed() {
		return f.styles.RedCard.Render(c.String())
	}
	return f.styles.BlackCard.Render(c.String())
}

// FormatCards renders cards separated by spaces
func (f *Formatter) FormatCards(cs []cards.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = f.FormatCard(c)
	}
	return strings.Join(parts, " ")
}

// FormatHand renders a hand's cards followed by its total
func (f *Formatter) FormatHand(h game.HandView) string {
	return fmt.Sprintf("%s (%s)", f.FormatCards(h.Cards), f.formatTotal(h))
}

func (f *Formatter) formatTotal(h game.HandView) string {
	switch {
	case h.Blackjack:
		return f.styles.Gold.Render("blackjack")
	case h.Sum > 21:
		return f.styles.Error.Render(fmt.Sprintf("%d bust", h.Sum))
	case h.Soft:
		return f.styles.Total.Render(fmt.Sprintf("soft %d", h.Sum))
	default:
		return f.styles.Total.Render(fmt.Sprintf("%d", h.Sum))
	}
}

// FormatOutcome renders a settlement outcome
func (f *Formatter) FormatOutcome(o game.Outcome) string {
	switch {
	case o.Won():
		return f.styles.Success.Render(o.String())
	case o.Lost():
		return f.styles.Error.Render(o.String())
	default:
		return f.styles.Warning.Render(o.String())
	}
}

// FormatActions renders an action set with its shortcuts, e.g. "stand [s]"
func (f *Formatter) FormatActions(actions []game.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf("%s [%s]", a, a.Shortcut())
	}
	return strings.Join(parts, ", ")
}

// FormatMoney renders a currency amount
func (f *Formatter) FormatMoney(amount int) string {
	if amount < 0 {
		return f.styles.Money.Render(fmt.Sprintf("-$%d", -amount))
	}
	return f.styles.Money.Render(fmt.Sprintf("$%d", amount))
}
