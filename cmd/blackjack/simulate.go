package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Sessions int           `default:"100" help:"Number of independent sessions"`
	Rounds   int           `default:"200" help:"Rounds per session"`
	Strategy string        `default:"basic" enum:"dealer,cautious,basic,random" help:"Bot strategy: dealer, cautious, basic, random"`
	Seed     int64         `default:"0" help:"RNG seed (0 for random)"`
	Parallel int           `default:"0" help:"Sessions to run at once (0 for one per CPU)"`
	Bankroll int           `default:"1000" help:"Starting bankroll per session"`
	MinBet   int           `name:"min-bet" default:"10" help:"Table minimum"`
	Main     int           `default:"0" help:"Main bet, 0 for the minimum"`
	Side     int           `default:"0" help:"Pot of gold side bet"`
	Timeout  time.Duration `default:"5s" help:"Per round timeout"`
	Out      string        `short:"o" help:"Write a JSON report to this file"`
	Verbose  bool          `short:"V" help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.WarnLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	parallel := c.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	seed := randutil.Seed(c.Seed)

	sim := simulator.New(simulator.Config{
		Sessions:   c.Sessions,
		Rounds:     c.Rounds,
		Strategy:   c.Strategy,
		Bets:       game.Bets{Main: c.Main, Side: c.Side},
		Bankroll:   c.Bankroll,
		MinimumBet: c.MinBet,
		Seed:       seed,
		Parallel:   parallel,
		Timeout:    c.Timeout,
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Simulating %d sessions of %d rounds with the %s bot (seed %d)\n",
		c.Sessions, c.Rounds, c.Strategy, seed)

	start := time.Now()
	result, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, c.Strategy, result)
	fmt.Printf("\nCompleted in %v\n", time.Since(start).Round(time.Millisecond))

	if c.Out != "" {
		if err := sim.WriteReport(c.Out, result); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Printf("Report written to %s\n", c.Out)
	}
	return nil
}
