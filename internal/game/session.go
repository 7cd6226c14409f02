package game

import (
	"context"
	"errors"
)

// Stats tallies a session's rounds
type Stats struct {
	Rounds       int
	VoidedRounds int
	HandsPlayed  int
	HandsWon     int
	HandsLost    int
	HandsPushed  int
	Blackjacks   int
	GoldCoins    int
	BonusesPaid  int // rounds whose side bet paid out
	BiggestBonus int
	TotalWagered int
	NetWon       int
}

func (s *Stats) record(result *RoundResult) {
	s.Rounds++
	s.GoldCoins += result.GoldCoins
	s.TotalWagered += result.Debited
	s.NetWon += result.Net

	if result.SideBetCredit > 0 {
		s.BonusesPaid++
		s.BiggestBonus = max(s.BiggestBonus, result.SideBetCredit)
	}

	for _, hand := range result.Hands {
		s.HandsPlayed++
		switch {
		case hand.Outcome.Won():
			s.HandsWon++
		case hand.Outcome.Pushed():
			s.HandsPushed++
		default:
			s.HandsLost++
		}
		if hand.Outcome == Blackjack {
			s.Blackjacks++
		}
	}
}

// Session owns the bankroll across rounds. It is not safe for concurrent use;
// rounds are played one at a time.
type Session struct {
	bankroll   int
	minimumBet int
	stats      Stats
}

// NewSession creates a session with a starting bankroll and a table minimum
func NewSession(bankroll, minimumBet int) *Session {
	if minimumBet <= 0 {
		panic("minimum bet must be positive")
	}
	return &Session{
		bankroll:   bankroll,
		minimumBet: minimumBet,
	}
}

// Bankroll returns the current bankroll
func (s *Session) Bankroll() int { return s.bankroll }

// MinimumBet returns the table minimum
func (s *Session) MinimumBet() int { return s.minimumBet }

// Stats returns the tallies so far
func (s *Session) Stats() Stats { return s.stats }

// CanContinue reports whether the bankroll supports another round. The
// bankroll must be strictly above the minimum.
func (s *Session) CanContinue() bool {
	return s.bankroll > s.minimumBet
}

// ClampMainBet bounds a requested main bet to [minimum, bankroll]
func (s *Session) ClampMainBet(requested int) (int, error) {
	if s.bankroll < s.minimumBet {
		return 0, &InsufficientFundsError{Bankroll: s.bankroll, Minimum: s.minimumBet}
	}
	return min(max(requested, s.minimumBet), s.bankroll), nil
}

// ClampSideBet bounds a requested side bet to [minimum, bankroll]. A request
// of zero or less skips the side bet, as does a bankroll below the minimum.
func (s *Session) ClampSideBet(requested int) int {
	if requested <= 0 || s.bankroll < s.minimumBet {
		return 0
	}
	return min(max(requested, s.minimumBet), s.bankroll)
}

// PlayRound plays a single round against the bankroll
func (s *Session) PlayRound(ctx context.Context, agent Agent, opts ...RoundOption) (*RoundResult, error) {
	result, err := NewRound(s, agent, opts...).Play(ctx)
	if err != nil {
		var insufficient *InsufficientFundsError
		if !errors.As(err, &insufficient) && !errors.Is(err, ErrQuit) {
			s.stats.VoidedRounds++
		}
		return nil, err
	}
	s.stats.record(result)
	return result, nil
}

// Play keeps playing rounds until the player quits, the bankroll no longer
// supports another round, or a round fails. Quitting returns nil; running out
// of money returns an *InsufficientFundsError. Without WithRNG or WithShoe
// every round draws from one session random source.
func (s *Session) Play(ctx context.Context, agent Agent, opts ...RoundOption) error {
	opts = append([]RoundOption{WithRNG(newRNG())}, opts...)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		result, err := s.PlayRound(ctx, agent, opts...)
		if errors.Is(err, ErrQuit) {
			return nil
		}
		if err != nil {
			return err
		}

		if !result.CanContinue {
			return &InsufficientFundsError{Bankroll: s.bankroll, Minimum: s.minimumBet}
		}
	}
}

func (s *Session) debit(amount int) {
	s.bankroll -= amount
}

func (s *Session) credit(amount int) {
	s.bankroll += amount
}
