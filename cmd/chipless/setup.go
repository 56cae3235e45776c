package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/config"
	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
)

// loadConfig reads the config file, then the environment, then flags.
func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	return cfg, nil
}

// openLedger opens the configured store and loads the ledger from it. The
// caller closes the returned store.
func openLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*ledger.Ledger, kvstore.Store, error) {
	store, err := kvstore.Open(ctx, cfg.StoreOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s ledger store: %w", cfg.Ledger.Backend, err)
	}
	l := ledger.New(ctx, store, logger,
		ledger.WithKey(cfg.Ledger.Key),
		ledger.WithTimeout(cfg.LedgerTimeout()),
	)
	return l, store, nil
}
