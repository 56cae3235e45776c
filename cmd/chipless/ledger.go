package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lox/chipless/internal/config"
	"github.com/lox/chipless/internal/logging"
	"github.com/lox/chipless/internal/session"
)

type LedgerCmd struct {
	Show  LedgerShowCmd  `cmd:"" default:"1" help:"Print who owes whom"`
	Reset LedgerResetCmd `cmd:"" help:"Clear every debt"`
}

type LedgerShowCmd struct {
	Player []string `short:"p" help:"Names to resolve ids against (defaults to table.players)"`
}

func (c *LedgerShowCmd) Run(g *Globals) error {
	cfg, err := ledgerConfig(g)
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}

	l, store, err := openLedger(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	players := c.Player
	if len(players) == 0 {
		players = cfg.Table.Players
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[session.MemberID(p)] = p
	}
	name := func(id string) string {
		if n, ok := names[id]; ok {
			return n
		}
		return id
	}

	debts := l.Debts()
	if len(debts) == 0 {
		fmt.Println("All square.")
		return nil
	}
	for _, d := range debts {
		fmt.Printf("%s owes %s $%.2f\n", name(d.Debtor), name(d.Creditor), d.Amount)
	}
	return nil
}

type LedgerResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation"`
}

func (c *LedgerResetCmd) Run(g *Globals) error {
	cfg, err := ledgerConfig(g)
	if err != nil {
		return err
	}
	if !c.Yes {
		fmt.Print("Clear every debt in the ledger? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level)
	if err != nil {
		return err
	}
	l, store, err := openLedger(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	l.Reset()
	if n := l.PersistErrors(); n > 0 {
		return fmt.Errorf("ledger could not be saved (%d errors, see log)", n)
	}
	fmt.Println("Ledger cleared.")
	return nil
}

func ledgerConfig(g *Globals) (*config.Config, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
