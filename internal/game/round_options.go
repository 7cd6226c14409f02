package game

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/cards"
)

// DefaultMaxIllegalAttempts is how many illegal answers a round tolerates for
// a single decision before it fails
const DefaultMaxIllegalAttempts = 5

// RoundOption configures a Round during creation.
type RoundOption func(*roundConfig)

// roundConfig holds all configuration for creating a round.
type roundConfig struct {
	id                 string
	rng                *rand.Rand
	shoe               *cards.Shoe
	logger             *log.Logger
	eventBus           EventBus
	clock              quartz.Clock
	decisionTimeout    time.Duration
	maxIllegalAttempts int
}

func newRoundConfig(opts []RoundOption) *roundConfig {
	cfg := &roundConfig{
		logger:             log.New(io.Discard),
		clock:              quartz.NewReal(),
		maxIllegalAttempts: DefaultMaxIllegalAttempts,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.eventBus == nil {
		cfg.eventBus = NewEventBus()
	}
	return cfg
}

// WithRoundID sets the round identifier instead of generating one
func WithRoundID(id string) RoundOption {
	return func(c *roundConfig) { c.id = id }
}

// WithRNG sets the random source used to shuffle a fresh shoe each round.
// A session shares it across rounds, so one seed reproduces a whole session.
func WithRNG(rng *rand.Rand) RoundOption {
	return func(c *roundConfig) { c.rng = rng }
}

// WithShoe plays the round from a specific shoe. It overrides WithRNG and is
// meant for a single round; a shoe is never reshuffled.
func WithShoe(shoe *cards.Shoe) RoundOption {
	return func(c *roundConfig) { c.shoe = shoe }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) RoundOption {
	return func(c *roundConfig) { c.logger = logger }
}

// WithEventBus sets the bus that receives round events
func WithEventBus(bus EventBus) RoundOption {
	return func(c *roundConfig) { c.eventBus = bus }
}

// WithClock sets the clock used for decision timeouts
func WithClock(clock quartz.Clock) RoundOption {
	return func(c *roundConfig) { c.clock = clock }
}

// WithDecisionTimeout bounds how long the agent may take for a bet or a
// decision. Zero disables the timeout.
func WithDecisionTimeout(d time.Duration) RoundOption {
	return func(c *roundConfig) { c.decisionTimeout = d }
}

// WithMaxIllegalAttempts sets how many illegal answers are tolerated per decision
func WithMaxIllegalAttempts(n int) RoundOption {
	return func(c *roundConfig) {
		if n > 0 {
			c.maxIllegalAttempts = n
		}
	}
}
