// Package simulator plays many independent blackjack sessions with a bot in
// the player's seat and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions   int
	Rounds     int // rounds per session, fewer if the bankroll runs out
	Strategy   string
	Bets       game.Bets
	Bankroll   int
	MinimumBet int
	Seed       int64
	Parallel   int
	Timeout    time.Duration // per round, zero for none
	Logger     *log.Logger
}

// Validate checks the configuration for obvious mistakes
func (c Config) Validate() error {
	if c.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.MinimumBet <= 0 {
		return fmt.Errorf("minimum bet must be positive, got %d", c.MinimumBet)
	}
	if c.Bankroll <= c.MinimumBet {
		return fmt.Errorf("bankroll $%d must exceed the $%d minimum", c.Bankroll, c.MinimumBet)
	}
	return nil
}

// SessionResult is the outcome of one simulated session
type SessionResult struct {
	Seed     int64
	Rounds   int
	Bankroll int
	Busted   bool
	Stats    *statistics.Statistics
}

// Result aggregates every session of a run
type Result struct {
	Sessions []SessionResult
	Stats    *statistics.Statistics
}

// Busted counts sessions that ran out of money before their last round
func (r *Result) Busted() int {
	n := 0
	for _, s := range r.Sessions {
		if s.Busted {
			n++
		}
	}
	return n
}

// Simulator runs blackjack session simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if config.Parallel <= 0 {
		config.Parallel = 1
	}
	return &Simulator{config: config, logger: logger.WithPrefix("simulator")}
}

// Run plays every session and merges their statistics in session order, so a
// run is reproducible from its seed regardless of parallelism
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if _, err := bot.New(s.config.Strategy, s.config.Bets, randutil.New(0), s.logger); err != nil {
		return nil, err
	}

	sessions := make([]SessionResult, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)

	for i := range sessions {
		g.Go(func() error {
			result, err := s.playSession(ctx, s.config.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i+1, err)
			}
			sessions[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, session := range sessions {
		stats.Merge(session.Stats)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"sessions", len(sessions),
		"rounds", stats.Rounds,
		"mean", fmt.Sprintf("%.3f", stats.Mean()))

	return &Result{Sessions: sessions, Stats: stats}, nil
}

// playSession plays one session from its own seed. The shoe and the bot draw
// from separate streams.
func (s *Simulator) playSession(ctx context.Context, seed int64) (SessionResult, error) {
	agent, err := bot.New(s.config.Strategy, s.config.Bets, randutil.New(randutil.Derive(seed, 1)), s.logger)
	if err != nil {
		return SessionResult{}, err
	}

	shoeRNG := randutil.New(seed)
	session := game.NewSession(s.config.Bankroll, s.config.MinimumBet)
	stats := &statistics.Statistics{}

	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return SessionResult{}, err
		}
		if !session.CanContinue() {
			break
		}

		result, err := s.playRound(ctx, session, agent, game.WithRNG(shoeRNG))
		if err != nil {
			return SessionResult{}, fmt.Errorf("round %d (seed %d): %w", round+1, seed, err)
		}
		stats.Add(convert(result))
	}

	s.logger.Debug("Session finished", "seed", seed, "rounds", stats.Rounds, "bankroll", session.Bankroll())

	return SessionResult{
		Seed:     seed,
		Rounds:   stats.Rounds,
		Bankroll: session.Bankroll(),
		Busted:   stats.Rounds < s.config.Rounds,
		Stats:    stats,
	}, nil
}

func (s *Simulator) playRound(ctx context.Context, session *game.Session, agent game.Agent, opts ...game.RoundOption) (*game.RoundResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	return session.PlayRound(ctx, agent, opts...)
}

// convert flattens an engine round result into a statistics sample
func convert(result *game.RoundResult) statistics.RoundResult {
	sample := statistics.RoundResult{
		Net:       result.Net,
		Wagered:   result.Debited,
		GoldCoins: result.GoldCoins,
		Bonus:     result.SideBetCredit,
	}
	for _, hand := range result.Hands {
		switch {
		case hand.Outcome.Won():
			sample.HandsWon++
		case hand.Outcome.Pushed():
			sample.HandsPushed++
		default:
			sample.HandsLost++
		}
		if hand.Outcome == game.Blackjack {
			sample.Blackjacks++
		}
	}
	return sample
}

// Report is the serialisable record of a run
type Report struct {
	Strategy   string             `json:"strategy"`
	Seed       int64              `json:"seed"`
	Sessions   int                `json:"sessions"`
	Rounds     int                `json:"rounds_per_session"`
	Bankroll   int                `json:"starting_bankroll"`
	MinimumBet int                `json:"minimum_bet"`
	MainBet    int                `json:"main_bet"`
	SideBet    int                `json:"side_bet"`
	Busted     int                `json:"busted_sessions"`
	Summary    statistics.Summary `json:"summary"`
}

// Report builds the serialisable record of a run
func (s *Simulator) Report(result *Result) Report {
	return Report{
		Strategy:   s.config.Strategy,
		Seed:       s.config.Seed,
		Sessions:   s.config.Sessions,
		Rounds:     s.config.Rounds,
		Bankroll:   s.config.Bankroll,
		MinimumBet: s.config.MinimumBet,
		MainBet:    s.config.Bets.Main,
		SideBet:    s.config.Bets.Side,
		Busted:     result.Busted(),
		Summary:    result.Stats.Summary(),
	}
}

// WriteReport writes the run's report as JSON, replacing filename atomically
func (s *Simulator) WriteReport(filename string, result *Result) error {
	return fileutil.WriteJSON(filename, s.Report(result))
}

// PrintSummary writes a human readable summary of a run
func PrintSummary(w io.Writer, strategy string, result *Result) {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS for %s-bot ===\n", strategy)
	fmt.Fprintf(w, "Sessions: %d (%d busted)\n", len(result.Sessions), result.Busted())
	fmt.Fprintf(w, "Rounds played: %d, hands played: %d\n", stats.Rounds, stats.Hands())

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f $/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f $/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f $\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] $/round\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Return: %.2f%% of $%d wagered\n", stats.ReturnRate()*100, stats.TotalWagered)

	fmt.Fprintf(w, "\n=== HAND OUTCOMES ===\n")
	fmt.Fprintf(w, "Won %d, lost %d, pushed %d (win rate %.1f%%), blackjacks %d\n",
		stats.HandsWon, stats.HandsLost, stats.HandsPushed, stats.WinRate()*100, stats.Blackjacks)

	fmt.Fprintf(w, "\n=== POT OF GOLD ===\n")
	for coins, rounds := range stats.GoldCoins {
		if rounds > 0 {
			fmt.Fprintf(w, "%d coins: %d rounds (pays %dx)\n", coins, rounds, game.PotOfGoldMultiplier(coins))
		}
	}
	fmt.Fprintf(w, "Bonus paid in %.2f%% of rounds, $%d total, biggest $%d\n",
		stats.BonusFrequency()*100, stats.BonusTotal, stats.MaxBonus)
}
