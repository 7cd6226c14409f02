package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/lox/blackjack/cards"
	"github.com/lox/blackjack/internal/randutil"
)

// Phase is the stage a round is in
type Phase uint8

const (
	PhaseBetting Phase = iota
	PhaseDealing
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseResolution
	PhaseTerminal
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurn:
		return "player turn"
	case PhaseDealerTurn:
		return "dealer turn"
	case PhaseResolution:
		return "resolution"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

var errDecisionTimeout = errors.New("decision timed out")

// Round plays a single round of blackjack against the session bankroll:
// bets, the deal, the player's hands in order, the dealer, then settlement.
// A round is played once and then discarded.
type Round struct {
	id                 string
	session            *Session
	agent              Agent
	shoe               *cards.Shoe
	logger             *log.Logger
	eventBus           EventBus
	clock              quartz.Clock
	decisionTimeout    time.Duration
	maxIllegalAttempts int

	phase     Phase
	bets      Bets
	hands     []*Hand
	dealer    *Hand
	goldCoins int
	debited   int
	played    bool
}

// NewRound creates a round for session, asking agent for every bet and decision
func NewRound(session *Session, agent Agent, opts ...RoundOption) *Round {
	if session == nil {
		panic("session is required for round creation")
	}
	if agent == nil {
		panic("agent is required for round creation")
	}

	cfg := newRoundConfig(opts)

	id := cfg.id
	if id == "" {
		id = newRoundID()
	}

	shoe := cfg.shoe
	if shoe == nil {
		rng := cfg.rng
		if rng == nil {
			rng = newRNG()
		}
		shoe = cards.NewShoe(rng)
	}

	return &Round{
		id:                 id,
		session:            session,
		agent:              agent,
		shoe:               shoe,
		logger:             cfg.logger.WithPrefix("round").With("round", shortID(id)),
		eventBus:           cfg.eventBus,
		clock:              cfg.clock,
		decisionTimeout:    cfg.decisionTimeout,
		maxIllegalAttempts: cfg.maxIllegalAttempts,
	}
}

// ID returns the round identifier
func (r *Round) ID() string { return r.id }

// Phase returns the current phase
func (r *Round) Phase() Phase { return r.phase }

// Play runs the round to completion. On success the bankroll has been settled.
// If the round fails after bets were taken it is voided: every stake is
// refunded and the failure is returned.
func (r *Round) Play(ctx context.Context) (*RoundResult, error) {
	if r.played {
		return nil, ErrRoundFinished
	}
	r.played = true

	r.publish(RoundStartEvent{
		RoundID:    r.id,
		Bankroll:   r.session.Bankroll(),
		MinimumBet: r.session.MinimumBet(),
		timestamp:  r.clock.Now(),
	})

	if err := r.takeBets(ctx); err != nil {
		r.phase = PhaseTerminal
		return nil, err
	}

	result, err := r.playHands(ctx)
	if err != nil {
		r.void(err)
		return nil, err
	}

	return result, nil
}

func (r *Round) playHands(ctx context.Context) (*RoundResult, error) {
	r.phase = PhaseDealing
	if err := r.deal(); err != nil {
		return nil, err
	}

	r.phase = PhasePlayerTurn
	if err := r.playerTurn(ctx); err != nil {
		return nil, err
	}

	r.phase = PhaseDealerTurn
	if err := r.dealerTurn(); err != nil {
		return nil, err
	}

	r.phase = PhaseResolution
	result := r.resolve()

	r.phase = PhaseTerminal
	r.logger.Info("Round complete",
		"net", result.Net,
		"bankroll", result.Bankroll,
		"goldCoins", result.GoldCoins)
	r.publish(RoundEndEvent{Result: *result, timestamp: r.clock.Now()})

	return result, nil
}

func (r *Round) takeBets(ctx context.Context) error {
	r.phase = PhaseBetting

	bankroll, minimum := r.session.Bankroll(), r.session.MinimumBet()
	if bankroll < minimum {
		return &InsufficientFundsError{Bankroll: bankroll, Minimum: minimum}
	}

	state := BetState{RoundID: r.id, Bankroll: bankroll, MinimumBet: minimum}
	requested, err := awaitAgent(ctx, r.clock, r.decisionTimeout, func(ctx context.Context) (Bets, error) {
		return r.agent.PlaceBets(ctx, state)
	})
	if err != nil {
		return r.agentError("place bets", err)
	}

	main, err := r.session.ClampMainBet(requested.Main)
	if err != nil {
		return err
	}
	r.debit(main)

	side := r.session.ClampSideBet(requested.Side)
	r.debit(side)

	r.bets = Bets{Main: main, Side: side}

	r.logger.Debug("Bets placed",
		"requestedMain", requested.Main,
		"requestedSide", requested.Side,
		"main", main,
		"side", side,
		"bankroll", r.session.Bankroll())

	r.publish(BetsPlacedEvent{
		RoundID:   r.id,
		Main:      main,
		Side:      side,
		Bankroll:  r.session.Bankroll(),
		timestamp: r.clock.Now(),
	})

	return nil
}

// deal gives two cards each, alternating, player first
func (r *Round) deal() error {
	var dealt [4]cards.Card
	for i := range dealt {
		c, err := r.draw()
		if err != nil {
			return err
		}
		dealt[i] = c
	}

	player := NewHand(r.bets.Main, dealt[0], dealt[2])
	r.hands = []*Hand{player}
	r.dealer = NewHand(0, dealt[1], dealt[3])

	r.logger.Debug("Dealt",
		"player", player.String(),
		"sum", player.Sum(),
		"dealerUp", r.dealer.UpCard())

	r.publish(DealEvent{
		RoundID:      r.id,
		Player:       player.View(),
		DealerUpCard: r.dealer.UpCard(),
		timestamp:    r.clock.Now(),
	})

	return nil
}

// playerTurn plays every hand in order. Hands appended by splits are played
// after the ones before them.
func (r *Round) playerTurn(ctx context.Context) error {
	for i := 0; i < len(r.hands); i++ {
		for !r.hands[i].Finished() {
			decision, err := r.requestDecision(ctx, i)
			if err != nil {
				return err
			}
			if err := r.apply(i, decision); err != nil {
				return err
			}
		}
	}
	return nil
}

// requestDecision asks for an action until a legal one arrives or the
// illegal answer limit is reached
func (r *Round) requestDecision(ctx context.Context, index int) (Decision, error) {
	valid := ValidActions(r.hands[index], r.session.Bankroll())
	state := r.tableState(index)

	for attempt := 1; ; attempt++ {
		decision, err := awaitAgent(ctx, r.clock, r.decisionTimeout, func(ctx context.Context) (Decision, error) {
			return r.agent.MakeDecision(ctx, state, valid)
		})
		if err != nil {
			return Decision{}, r.agentError("make decision", err)
		}

		if IsValidAction(decision.Action, valid) {
			return decision, nil
		}

		r.logger.Warn("Illegal action",
			"hand", index,
			"action", decision.Action,
			"attempt", attempt)

		r.publish(IllegalActionEvent{
			RoundID:   r.id,
			HandIndex: index,
			Action:    decision.Action,
			Valid:     valid,
			Attempt:   attempt,
			timestamp: r.clock.Now(),
		})

		if attempt >= r.maxIllegalAttempts {
			return Decision{}, &IllegalActionError{Action: decision.Action, Valid: valid, Attempts: attempt}
		}
	}
}

// apply performs a legal decision on hand index
func (r *Round) apply(index int, decision Decision) error {
	hand := r.hands[index]
	event := PlayerActionEvent{
		RoundID:   r.id,
		HandIndex: index,
		Action:    decision.Action,
		Reasoning: decision.Reasoning,
	}

	switch decision.Action {
	case Hit:
		c, err := r.draw()
		if err != nil {
			return err
		}
		if err := hand.Hit(c); err != nil {
			return err
		}

	case Stand:
		if err := hand.Stand(); err != nil {
			return err
		}

	case Split, FreeSplit:
		c1, err := r.draw()
		if err != nil {
			return err
		}
		c2, err := r.draw()
		if err != nil {
			return err
		}
		sibling, err := hand.Split(c1, c2)
		if err != nil {
			return err
		}
		if decision.Action.IsFree() {
			r.goldCoins++
		} else {
			r.debit(sibling.Wager())
			sibling.fund(sibling.Wager())
		}
		r.hands = append(r.hands, sibling)
		view := sibling.View()
		event.Sibling = &view

	case Double, FreeDouble:
		c, err := r.draw()
		if err != nil {
			return err
		}
		extra := hand.Wager()
		if err := hand.Double(c); err != nil {
			return err
		}
		if decision.Action.IsFree() {
			r.goldCoins++
		} else {
			r.debit(extra)
			hand.fund(extra)
		}

	default:
		return fmt.Errorf("unhandled action %v", decision.Action)
	}

	r.logger.Debug("Player action",
		"hand", index,
		"action", decision.Action,
		"cards", hand.String(),
		"sum", hand.Sum(),
		"reasoning", decision.Reasoning)

	event.Hand = hand.View()
	event.Bankroll = r.session.Bankroll()
	event.GoldCoins = r.goldCoins
	event.timestamp = r.clock.Now()
	r.publish(event)

	return nil
}

// dealerTurn reveals the hole card and draws until the dealer stays. The
// dealer always plays out, even when every player hand is already decided.
func (r *Round) dealerTurn() error {
	r.logger.Debug("Dealer reveals", "dealer", r.dealer.String(), "sum", r.dealer.Sum())
	r.publish(DealerRevealEvent{RoundID: r.id, Dealer: r.dealer.View(), timestamp: r.clock.Now()})

	for !r.dealer.DealerStay() {
		c, err := r.draw()
		if err != nil {
			return err
		}
		r.dealer.add(c)
		r.publish(DealerDrawEvent{RoundID: r.id, Card: c, Dealer: r.dealer.View(), timestamp: r.clock.Now()})
	}

	r.dealer.finish()
	return nil
}

// resolve settles every hand and the side bet and credits the bankroll
func (r *Round) resolve() *RoundResult {
	result := &RoundResult{
		ID:        r.id,
		Dealer:    r.dealer.View(),
		MainBet:   r.bets.Main,
		SideBet:   r.bets.Side,
		GoldCoins: r.goldCoins,
		Debited:   r.debited,
		Hands:     make([]HandResult, 0, len(r.hands)),
	}

	for i, h := range r.hands {
		hr := settle(h, r.dealer)
		result.Hands = append(result.Hands, hr)
		result.Credit += hr.Credit

		r.logger.Debug("Hand settled",
			"hand", i,
			"outcome", hr.Outcome,
			"sum", hr.Sum,
			"dealer", r.dealer.Sum(),
			"credit", hr.Credit)

		r.publish(HandResultEvent{RoundID: r.id, HandIndex: i, Result: hr, timestamp: r.clock.Now()})
	}

	if r.bets.Side > 0 {
		result.SideBetCredit = r.bets.Side * PotOfGoldMultiplier(r.goldCoins)
		result.Credit += result.SideBetCredit
	}

	r.session.credit(result.Credit)
	result.Net = result.Credit - r.debited
	result.Bankroll = r.session.Bankroll()
	result.CanContinue = r.session.CanContinue()

	return result
}

// void refunds everything debited during the round
func (r *Round) void(cause error) {
	failedIn := r.phase
	r.phase = PhaseTerminal

	refund := r.debited
	r.session.credit(refund)
	r.debited = 0

	r.logger.Warn("Round voided",
		"phase", failedIn,
		"error", cause,
		"refund", refund,
		"bankroll", r.session.Bankroll())

	r.publish(RoundVoidEvent{
		RoundID:   r.id,
		Reason:    cause.Error(),
		Refund:    refund,
		Bankroll:  r.session.Bankroll(),
		timestamp: r.clock.Now(),
	})
}

func (r *Round) tableState(active int) TableState {
	hands := make([]HandView, len(r.hands))
	for i, h := range r.hands {
		hands[i] = h.View()
	}
	return TableState{
		RoundID:      r.id,
		Bankroll:     r.session.Bankroll(),
		MinimumBet:   r.session.MinimumBet(),
		MainBet:      r.bets.Main,
		SideBet:      r.bets.Side,
		GoldCoins:    r.goldCoins,
		Hands:        hands,
		ActiveHand:   active,
		DealerUpCard: r.dealer.UpCard(),
	}
}

func (r *Round) draw() (cards.Card, error) {
	c, err := r.shoe.Draw()
	if err != nil {
		return cards.Card{}, fmt.Errorf("%s: %w", r.phase, err)
	}
	return c, nil
}

func (r *Round) debit(amount int) {
	r.session.debit(amount)
	r.debited += amount
}

func (r *Round) publish(event GameEvent) {
	r.eventBus.Publish(event)
}

func (r *Round) agentError(op string, err error) error {
	if errors.Is(err, ErrQuit) {
		r.logger.Info("Player quit", "phase", r.phase)
		return ErrQuit
	}
	r.logger.Error("Agent failed", "op", op, "error", err)
	return fmt.Errorf("%s: %w: %w", op, ErrAgentUnavailable, err)
}

type agentReply[T any] struct {
	value T
	err   error
}

// awaitAgent calls fn and waits for its answer, the decision timeout or ctx,
// whichever comes first
func awaitAgent[T any](ctx context.Context, clock quartz.Clock, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	timeoutFired := make(chan struct{})
	if timeout > 0 {
		timer := clock.AfterFunc(timeout, func() {
			close(timeoutFired)
		})
		defer timer.Stop()
	}

	replies := make(chan agentReply[T], 1)
	go func() {
		v, err := fn(ctx)
		replies <- agentReply[T]{value: v, err: err}
	}()

	var zero T
	select {
	case rep := <-replies:
		return rep.value, rep.err
	case <-timeoutFired:
		cancel(errDecisionTimeout)
		return zero, errDecisionTimeout
	case <-ctx.Done():
		return zero, context.Cause(ctx)
	}
}

func newRoundID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// shortID trims a round ID for log lines
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// newRNG is used by sessions that are not given a random source
func newRNG() *rand.Rand {
	return randutil.New(randutil.Seed(0))
}
