package main

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lox/chipless/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (*CLI, string) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx.Command()
}

func TestParsePlay(t *testing.T) {
	t.Parallel()
	cli, cmd := parse(t, "play", "baccarat", "-p", "Ana", "-p", "Ben", "-d", "Ben", "--pace-ms", "0")
	assert.Equal(t, "play <game>", cmd)
	assert.Equal(t, []string{"Ana", "Ben"}, cli.Play.Player)

	cfg := config.Default()
	cli.Play.apply(cfg)
	assert.Equal(t, "baccarat", cfg.Table.Game)
	assert.Equal(t, "Ben", cfg.Table.Dealer)
	assert.Zero(t, cfg.Table.PaceMs)
	require.NoError(t, cfg.Validate())
}

func TestPlayKeepsConfigPace(t *testing.T) {
	t.Parallel()
	cli, _ := parse(t, "play")
	cfg := config.Default()
	cli.Play.apply(cfg)
	assert.Equal(t, config.Default().Table.PaceMs, cfg.Table.PaceMs)
	assert.Equal(t, config.Default().Table.Game, cfg.Table.Game)
}

func TestParseSimulate(t *testing.T) {
	t.Parallel()
	cli, cmd := parse(t, "-l", "debug", "simulate", "-n", "500", "-s", "2", "-w", "4")
	assert.Equal(t, "simulate", cmd)
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, 500, cli.Simulate.Rounds)
	assert.Equal(t, 2, cli.Simulate.Seats)
	assert.Equal(t, 4, cli.Simulate.Workers)
	assert.Equal(t, 10.0, cli.Simulate.Bet)
}

func TestParseLedger(t *testing.T) {
	t.Parallel()
	_, cmd := parse(t, "ledger", "reset", "-y")
	assert.Equal(t, "ledger reset", cmd)
}
