package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Sessions:   4,
		Rounds:     25,
		Strategy:   "basic",
		Bets:       game.Bets{Main: 10, Side: 10},
		Bankroll:   500,
		MinimumBet: 10,
		Seed:       12345,
		Parallel:   2,
		Logger:     log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel}),
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"no sessions", func(c *Config) { c.Sessions = 0 }, false},
		{"no rounds", func(c *Config) { c.Rounds = -1 }, false},
		{"no minimum", func(c *Config) { c.MinimumBet = 0 }, false},
		{"bankroll at minimum", func(c *Config) { c.Bankroll = 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	result, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Sessions, 4)
	total := 0
	for i, session := range result.Sessions {
		assert.Equal(t, int64(12345+i), session.Seed)
		assert.LessOrEqual(t, session.Rounds, 25)
		assert.Equal(t, session.Busted, session.Rounds < 25)
		total += session.Rounds
	}

	stats := result.Stats
	assert.Equal(t, total, stats.Rounds)
	assert.NoError(t, stats.Validate())
	assert.Positive(t, stats.Hands())
	assert.GreaterOrEqual(t, stats.TotalWagered, stats.Rounds*10, "every round stakes at least the minimum")
}

func TestRunNetMatchesBankrolls(t *testing.T) {
	cfg := testConfig()
	result, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	for _, session := range result.Sessions {
		assert.Equal(t, float64(session.Bankroll-cfg.Bankroll), session.Stats.SumNet,
			"session %d net should account for the bankroll change", session.Seed)
	}
}

func TestRunIsReproducible(t *testing.T) {
	serial := testConfig()
	serial.Parallel = 1
	parallel := testConfig()
	parallel.Parallel = 4

	a, err := New(serial).Run(context.Background())
	require.NoError(t, err)
	b, err := New(parallel).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Stats.Summary(), b.Stats.Summary())
	assert.Equal(t, a.Stats.Values, b.Stats.Values)
}

func TestRunUnknownStrategy(t *testing.T) {
	cfg := testConfig()
	cfg.Strategy = "martingale"

	_, err := New(cfg).Run(context.Background())
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConvert(t *testing.T) {
	result := &game.RoundResult{
		Hands: []game.HandResult{
			{Outcome: game.Blackjack},
			{Outcome: game.DealerPush22},
			{Outcome: game.Bust},
		},
		GoldCoins:     2,
		SideBetCredit: 100,
		Debited:       30,
		Net:           85,
	}

	sample := convert(result)
	assert.Equal(t, 85, sample.Net)
	assert.Equal(t, 30, sample.Wagered)
	assert.Equal(t, 1, sample.HandsWon)
	assert.Equal(t, 1, sample.HandsPushed)
	assert.Equal(t, 1, sample.HandsLost)
	assert.Equal(t, 1, sample.Blackjacks)
	assert.Equal(t, 2, sample.GoldCoins)
	assert.Equal(t, 100, sample.Bonus)
}

func TestWriteReport(t *testing.T) {
	cfg := testConfig()
	sim := New(cfg)
	result, err := sim.Run(context.Background())
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, sim.WriteReport(filename, result))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "basic", report.Strategy)
	assert.Equal(t, cfg.Sessions, report.Sessions)
	assert.Equal(t, result.Stats.Rounds, report.Summary.Rounds)
	assert.Equal(t, result.Busted(), report.Busted)
}

func TestPrintSummary(t *testing.T) {
	result, err := New(testConfig()).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, "basic", result)

	out := buf.String()
	assert.Contains(t, out, "FINAL RESULTS for basic-bot")
	assert.Contains(t, out, "POT OF GOLD")
	assert.Contains(t, out, "0 coins:")
}
