package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/chipless/internal/logging"
	"github.com/lox/chipless/internal/simulator"
)

type SimulateCmd struct {
	Rounds  int     `short:"n" default:"10000" help:"Rounds to play"`
	Seats   int     `short:"s" default:"3" help:"Player seats at the table"`
	Workers int     `short:"w" default:"0" help:"Parallel workers, 0 for the CPU count"`
	Bet     float64 `default:"10" help:"Flat bet per seat per round"`
	Seed    int64   `default:"0" help:"Base seed, 0 for the clock"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	logger.Info("Starting simulation", "rounds", c.Rounds, "seats", c.Seats, "workers", c.Workers, "seed", seed)
	report, err := simulator.RunParallel(ctx, simulator.Config{
		Rounds: c.Rounds,
		Seats:  c.Seats,
		Bet:    c.Bet,
		Seed:   seed,
		Logger: logger,
	}, c.Workers)
	if err != nil {
		return err
	}

	simulator.WriteSummary(os.Stdout, report, c.Bet)
	fmt.Printf("\nSeed %d, %s\n", seed, time.Since(start).Round(time.Millisecond))
	return nil
}
