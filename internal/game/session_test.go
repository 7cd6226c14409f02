package game

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionClampMainBet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bankroll  int
		requested int
		want      int
		wantErr   bool
	}{
		{"within range", 1000, 50, 50, false},
		{"below minimum", 1000, 1, 10, false},
		{"negative", 1000, -20, 10, false},
		{"above bankroll", 40, 100, 40, false},
		{"bankroll below minimum", 5, 10, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.bankroll, 10)
			got, err := s.ClampMainBet(tt.requested)
			if tt.wantErr {
				var insufficient *InsufficientFundsError
				require.ErrorAs(t, err, &insufficient)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSessionClampSideBet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		bankroll  int
		requested int
		want      int
	}{
		{"skipped", 1000, 0, 0},
		{"negative skips", 1000, -5, 0},
		{"raised to minimum", 1000, 3, 10},
		{"within range", 1000, 25, 25},
		{"capped at bankroll", 30, 100, 30},
		{"degrades when bankroll is below minimum", 5, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(tt.bankroll, 10)
			assert.Equal(t, tt.want, s.ClampSideBet(tt.requested))
		})
	}
}

func TestSessionCanContinue(t *testing.T) {
	t.Parallel()

	assert.True(t, NewSession(11, 10).CanContinue())
	assert.False(t, NewSession(10, 10).CanContinue(), "the bankroll must exceed the minimum")
	assert.False(t, NewSession(0, 10).CanContinue())
}

func TestSessionStats(t *testing.T) {
	t.Parallel()

	session := NewSession(1000, 10)

	_, _, err := playStacked(t, session, NewScriptedAgent(Bets{Main: 100}), "As9dKh8c")
	require.NoError(t, err)
	_, _, err = playStacked(t, session, NewScriptedAgent(Bets{Main: 100, Side: 10}, FreeSplit, FreeDouble, FreeDouble), "7s10d7h7c4d3cKhKs")
	require.NoError(t, err)
	_, _, err = playStacked(t, session, NewScriptedAgent(Bets{Main: 100}, Stand), "10sAs8h6c2d")
	require.NoError(t, err)

	stats := session.Stats()
	assert.Equal(t, 3, stats.Rounds)
	assert.Equal(t, 4, stats.HandsPlayed)
	assert.Equal(t, 3, stats.HandsWon)
	assert.Equal(t, 1, stats.HandsLost)
	assert.Equal(t, 1, stats.Blackjacks)
	assert.Equal(t, 3, stats.GoldCoins)
	assert.Equal(t, 1, stats.BonusesPaid)
	assert.Equal(t, 300, stats.BiggestBonus)
	assert.Equal(t, session.Bankroll()-1000, stats.NetWon)
}

func TestSessionPlayStopsWhenBroke(t *testing.T) {
	t.Parallel()

	session := NewSession(100, 10)
	agent := AgentFuncs{
		Bets: func(ctx context.Context, state BetState) (Bets, error) {
			return Bets{Main: state.Bankroll}, nil
		},
		Decide: func(ctx context.Context, state TableState, valid []Action) (Decision, error) {
			return Decision{Action: Hit}, nil
		},
	}

	err := session.Play(context.Background(), agent,
		WithRNG(randutil.New(7)),
		WithLogger(log.New(io.Discard)))

	var insufficient *InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	assert.False(t, session.CanContinue())
	assert.GreaterOrEqual(t, session.Stats().Rounds, 1)
}

func TestSessionPlayStopsOnQuit(t *testing.T) {
	t.Parallel()

	session := NewSession(1000, 10)
	rounds := 0
	agent := AgentFuncs{
		Bets: func(ctx context.Context, state BetState) (Bets, error) {
			if rounds == 3 {
				return Bets{}, ErrQuit
			}
			rounds++
			return Bets{Main: 10}, nil
		},
	}

	err := session.Play(context.Background(), agent, WithRNG(randutil.New(1)))
	require.NoError(t, err)
	assert.Equal(t, 3, session.Stats().Rounds)
}

func TestSessionPlayIsReproducible(t *testing.T) {
	t.Parallel()

	play := func() Stats {
		session := NewSession(500, 10)
		rounds := 0
		agent := AgentFuncs{
			Bets: func(ctx context.Context, state BetState) (Bets, error) {
				if rounds == 25 {
					return Bets{}, ErrQuit
				}
				rounds++
				return Bets{Main: 20, Side: 10}, nil
			},
			Decide: func(ctx context.Context, state TableState, valid []Action) (Decision, error) {
				if state.Active().Sum < 15 {
					return Decision{Action: valid[len(valid)-1]}, nil
				}
				return Decision{Action: Stand}, nil
			},
		}
		err := session.Play(context.Background(), agent, WithRNG(randutil.New(99)))
		if err != nil {
			t.Logf("session ended early: %v", err)
		}
		return session.Stats()
	}

	assert.Equal(t, play(), play())
}
