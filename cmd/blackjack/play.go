package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/bot"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/display"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/tui"
)

type PlayCmd struct {
	Config   string `short:"c" default:"blackjack.hcl" help:"Configuration file"`
	EnvFile  string `name:"env-file" default:".env" help:"Environment file with BLACKJACK_* overrides"`
	Bankroll int    `help:"Starting bankroll (overrides config)"`
	MinBet   int    `name:"min-bet" help:"Table minimum (overrides config)"`
	Seed     int64  `help:"Shoe seed, 0 for random (overrides config)"`
	LogLevel string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFile  string `name:"log-file" help:"Log file (overrides config)"`
	Plain    bool   `help:"Disable colours"`

	Bot    string `help:"Let a bot play instead of you: dealer, cautious, basic, random"`
	Rounds int    `default:"100" help:"Rounds a bot plays before stopping"`
	Main   int    `default:"0" help:"Main bet a bot places, 0 for the minimum"`
	Side   int    `default:"0" help:"Pot of gold side bet a bot places"`
}

func (c *PlayCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	display.ConfigureColor(c.Plain || cfg.UI.Theme == "plain")

	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level, err := log.ParseLevel(cfg.UI.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "MAIN",
		Level:           level,
	})

	seed := randutil.Seed(cfg.Table.Seed)
	logger.Info("Starting session",
		"bankroll", cfg.Table.StartingBankroll,
		"minimum", cfg.Table.MinimumBet,
		"seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := game.NewSession(cfg.Table.StartingBankroll, cfg.Table.MinimumBet)
	bus := game.NewEventBus()
	opts := []game.RoundOption{
		game.WithRNG(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithEventBus(bus),
		game.WithDecisionTimeout(cfg.DecisionTimeout()),
		game.WithMaxIllegalAttempts(cfg.Table.MaxIllegalAttempts),
	}

	if c.Bot != "" {
		return c.autoplay(ctx, session, bus, logger, seed, opts)
	}
	return c.interactive(ctx, session, bus, logger, opts)
}

func (c *PlayCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.ApplyEnv(c.EnvFile); err != nil {
		return nil, err
	}

	// Apply command line overrides
	if c.Bankroll != 0 {
		cfg.Table.StartingBankroll = c.Bankroll
	}
	if c.MinBet != 0 {
		cfg.Table.MinimumBet = c.MinBet
	}
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// interactive runs the session in the background while the TUI owns the
// terminal. The session ends when the player quits, runs out of money or
// closes the window.
func (c *PlayCmd) interactive(ctx context.Context, session *game.Session, bus game.EventBus, logger *log.Logger, opts []game.RoundOption) error {
	model := tui.NewTUIModel(logger)
	agent := tui.NewTUIAgent(model, logger)
	bus.Subscribe(agent)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(program)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		err := session.Play(ctx, agent, opts...)
		if err != nil && !errors.Is(err, context.Canceled) {
			model.Post(tui.LogMsg{Entry: tui.WarningStyle.Render(err.Error())})
			model.Post(tui.LogMsg{Entry: "Press Enter to leave the table"})
			_, _, _, _ = model.WaitForActionContext(ctx)
		}
		model.SendQuitSignal()
		done <- err
	}()

	model.Post(tui.LogMsg{Entry: titleStyle.Render(" ♠ ♥ Blackjack • Pot of Gold ♦ ♣ ")})

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running TUI: %w", err)
	}
	cancel()
	err := <-done

	printStats(session)

	var insufficient *game.InsufficientFundsError
	if err == nil || errors.As(err, &insufficient) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// autoplay lets a bot play up to c.Rounds rounds, printing every event
func (c *PlayCmd) autoplay(ctx context.Context, session *game.Session, bus game.EventBus, logger *log.Logger, seed int64, opts []game.RoundOption) error {
	agent, err := bot.New(c.Bot, game.Bets{Main: c.Main, Side: c.Side}, randutil.New(randutil.Derive(seed, 1)), logger)
	if err != nil {
		return err
	}

	formatter := display.NewFormatter(display.Options{ShowReasoning: true})
	bus.Subscribe(display.NewSubscriber(formatter, func(s string) { fmt.Println(s) }))

	fmt.Println(titleStyle.Render(fmt.Sprintf(" ♠ ♥ Blackjack • %s-bot ♦ ♣ ", c.Bot)))
	fmt.Println()

	for round := 0; round < c.Rounds && session.CanContinue(); round++ {
		if _, err := session.PlayRound(ctx, agent, opts...); err != nil {
			return fmt.Errorf("round %d: %w", round+1, err)
		}
		fmt.Println()
	}

	printStats(session)
	return nil
}

func printStats(session *game.Session) {
	stats := session.Stats()
	fmt.Println(titleStyle.Render(" Session summary "))
	fmt.Printf("Rounds played: %d (%d voided)\n", stats.Rounds, stats.VoidedRounds)
	fmt.Printf("Hands: %d won, %d lost, %d pushed, %d blackjacks\n",
		stats.HandsWon, stats.HandsLost, stats.HandsPushed, stats.Blackjacks)
	fmt.Printf("Gold coins collected: %d, bonuses paid: %d (biggest $%d)\n",
		stats.GoldCoins, stats.BonusesPaid, stats.BiggestBonus)
	fmt.Printf("Wagered $%d, net $%d, final bankroll $%d\n",
		stats.TotalWagered, stats.NetWon, session.Bankroll())
}
