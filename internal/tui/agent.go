package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
)

// TUIAgent lets a person at the terminal play the player's seat. It answers
// the engine from lines typed into the model and renders every round event
// into the game log.
type TUIAgent struct {
	model     *TUIModel
	formatter *display.Formatter
	logger    *log.Logger
	status    Status
}

// NewTUIAgent creates an agent backed by model
func NewTUIAgent(model *TUIModel, logger *log.Logger) *TUIAgent {
	return &TUIAgent{
		model:     model,
		formatter: display.NewFormatter(display.Options{}),
		logger:    logger.WithPrefix("tui"),
	}
}

// OnEvent implements game.EventSubscriber
func (a *TUIAgent) OnEvent(event game.GameEvent) {
	if text := a.formatter.FormatEvent(event); text != "" {
		a.model.Post(LogMsg{Entry: text})
	}

	switch e := event.(type) {
	case game.RoundStartEvent:
		a.status = Status{Bankroll: e.Bankroll, MinimumBet: e.MinimumBet}
	case game.BetsPlacedEvent:
		a.status.Bankroll = e.Bankroll
		a.status.MainBet = e.Main
		a.status.SideBet = e.Side
	case game.PlayerActionEvent:
		a.status.Bankroll = e.Bankroll
		a.status.GoldCoins = e.GoldCoins
	case game.RoundEndEvent:
		a.status.Bankroll = e.Result.Bankroll
		a.model.Post(LogMsg{Entry: ""})
	case game.RoundVoidEvent:
		a.status.Bankroll = e.Bankroll
		a.model.Post(LogMsg{Entry: ""})
	default:
		return
	}
	a.model.Post(StatusMsg{Status: a.status})
}

// PlaceBets implements game.Agent. An empty line bets the table minimum with
// no side bet; "25 10" bets 25 on the hand and 10 on the pot of gold.
func (a *TUIAgent) PlaceBets(ctx context.Context, state game.BetState) (game.Bets, error) {
	a.model.Post(PromptMsg{Prompt: Prompt{Kind: PromptBet, MinimumBet: state.MinimumBet}})
	defer a.model.Post(PromptMsg{})

	for {
		action, args, cont, err := a.model.WaitForActionContext(ctx)
		if err != nil {
			return game.Bets{}, err
		}
		if !cont || isQuit(action) {
			return game.Bets{}, game.ErrQuit
		}
		if action == "help" || action == "?" {
			a.model.Post(LogMsg{Entry: betHelp})
			continue
		}

		bets, err := ParseBets(action, args, state.MinimumBet)
		if err != nil {
			a.model.Post(LogMsg{Entry: ErrorStyle.Render(err.Error())})
			continue
		}
		if bets.Main > state.Bankroll {
			a.model.Post(LogMsg{Entry: WarningStyle.Render(fmt.Sprintf("You only have $%d", state.Bankroll))})
			continue
		}

		a.logger.Debug("Bets entered", "main", bets.Main, "side", bets.Side)
		return bets, nil
	}
}

// MakeDecision implements game.Agent
func (a *TUIAgent) MakeDecision(ctx context.Context, state game.TableState, validActions []game.Action) (game.Decision, error) {
	a.model.Post(PromptMsg{Prompt: Prompt{
		Kind:         PromptAction,
		Hands:        state.Hands,
		ActiveHand:   state.ActiveHand,
		DealerUpCard: state.DealerUpCard,
		Valid:        validActions,
	}})
	defer a.model.Post(PromptMsg{})

	for {
		input, _, cont, err := a.model.WaitForActionContext(ctx)
		if err != nil {
			return game.Decision{}, err
		}
		if !cont || isQuit(input) {
			return game.Decision{}, game.ErrQuit
		}
		if input == "help" || input == "?" {
			a.model.Post(LogMsg{Entry: actionHelp(validActions)})
			continue
		}

		action, err := game.ParseAction(input)
		if err != nil {
			a.model.Post(LogMsg{Entry: ErrorStyle.Render(fmt.Sprintf("Unknown action %q. Type 'help' for options", input))})
			continue
		}

		// A paid split or double is promoted when the free one is on offer
		action = promote(action, validActions)

		if !game.IsValidAction(action, validActions) {
			a.model.Post(LogMsg{Entry: WarningStyle.Render(fmt.Sprintf("You can't %s now. Valid: %s",
				action, a.formatter.FormatActions(validActions)))})
			continue
		}

		return game.Decision{Action: action, Reasoning: "player"}, nil
	}
}

// ParseBets reads a bet line: the main bet followed by an optional side bet.
// An empty line bets the minimum.
func ParseBets(action string, args []string, minimum int) (game.Bets, error) {
	if action == "" {
		return game.Bets{Main: minimum}, nil
	}
	if len(args) > 1 {
		return game.Bets{}, fmt.Errorf("expected a bet and an optional side bet, got %d values", len(args)+1)
	}

	main, err := parseAmount(action)
	if err != nil {
		return game.Bets{}, err
	}
	if main < minimum {
		return game.Bets{}, fmt.Errorf("the minimum bet is $%d", minimum)
	}

	bets := game.Bets{Main: main}
	if len(args) == 1 {
		if bets.Side, err = parseAmount(args[0]); err != nil {
			return game.Bets{}, err
		}
	}
	return bets, nil
}

func parseAmount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "$"))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a bet amount", s)
	}
	return n, nil
}

func promote(action game.Action, validActions []game.Action) game.Action {
	switch {
	case action == game.Split && game.IsValidAction(game.FreeSplit, validActions):
		return game.FreeSplit
	case action == game.Double && game.IsValidAction(game.FreeDouble, validActions):
		return game.FreeDouble
	}
	return action
}

func isQuit(input string) bool {
	switch input {
	case "q", "quit", "exit":
		return true
	}
	return false
}

const betHelp = "Enter your main bet and an optional pot of gold side bet, e.g. '25 10'. " +
	"Press Enter to bet the minimum, 'quit' to leave the table."

func actionHelp(valid []game.Action) string {
	var b strings.Builder
	b.WriteString("Actions:")
	for _, a := range valid {
		fmt.Fprintf(&b, "\n  %-3s %s", a.Shortcut(), a)
		if a.IsFree() {
			b.WriteString(" (free, earns a gold coin)")
		}
	}
	b.WriteString("\n  q   quit")
	return b.String()
}
