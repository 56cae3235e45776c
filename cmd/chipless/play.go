package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
	"github.com/lox/chipless/internal/config"
	"github.com/lox/chipless/internal/console"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/logging"
	"github.com/lox/chipless/internal/randutil"
	"github.com/lox/chipless/internal/session"
	"github.com/lox/chipless/internal/tui"
	"github.com/muesli/termenv"
)

type PlayCmd struct {
	Game    string   `arg:"" optional:"" help:"Game to play: blackjack, baccarat, roulette or pulse (overrides config)"`
	Player  []string `short:"p" help:"Player name, repeat for each seat (overrides config)"`
	Dealer  string   `short:"d" help:"Dealer name (overrides config)"`
	Seed    int64    `help:"Shuffle seed, 0 for the clock (overrides config)"`
	PaceMs  int      `default:"-1" help:"Milliseconds between dealer steps (overrides config)"`
	LogFile string   `help:"Log file path (overrides config)"`
}

func (c *PlayCmd) apply(cfg *config.Config) {
	if c.Game != "" {
		cfg.Table.Game = c.Game
	}
	if len(c.Player) > 0 {
		cfg.Table.Players = c.Player
	}
	if c.Dealer != "" {
		cfg.Table.Dealer = c.Dealer
	}
	if c.Seed != 0 {
		cfg.Table.Seed = c.Seed
	}
	if c.PaceMs >= 0 {
		cfg.Table.PaceMs = c.PaceMs
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if len(cfg.Table.Players) == 0 {
		return errors.New("no players: pass --player for each seat or set table.players")
	}
	if cfg.Table.Dealer == "" {
		return errors.New("no dealer: pass --dealer or set table.dealer")
	}

	logger, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx := context.Background()
	l, store, err := openLedger(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	roster, err := session.NewRoster(cfg.Table.Players, cfg.Table.Dealer)
	if err != nil {
		return err
	}

	rng := randutil.NewFromTime(cfg.Table.Seed)
	deps := console.Deps{
		Shoe:   deck.NewShoe(rng),
		Coin:   randutil.CryptoCoin{},
		Logger: logger,
	}
	if cfg.Table.Game == session.GameRoulette && cfg.Table.Seed != 0 {
		deps.Coin = randutil.NewSeededCoin(rng)
	}
	con, err := console.New(cfg.Table.Game, roster, l, deps)
	if err != nil {
		return err
	}

	if termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	logger.Info("Opening table",
		"game", cfg.Table.Game,
		"players", len(cfg.Table.Players),
		"dealer", cfg.Table.Dealer,
		"ledger", cfg.Ledger.Backend)

	model := tui.New(con, tui.NewPacer(quartz.NewReal(), cfg.Pace()), logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	if n := l.PersistErrors(); n > 0 {
		logger.Warn("Ledger persistence failed during the session", "errors", n)
	}
	return nil
}
