package pulse

import (
	"context"
	"testing"

	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, coin randutil.Coin) (*Game, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(context.Background(), kvstore.NewMemory(), nil)
	g := New(coin, l, nil)
	require.NoError(t, g.AddPlayer("ana", "Ana"))
	require.NoError(t, g.AddPlayer("cy", "Cy"))
	require.NoError(t, g.SetDealer("cy"))
	return g, l
}

func TestPlayerWins(t *testing.T) {
	t.Parallel()
	g, l := newGame(t, randutil.NewFixedCoin(true))

	require.NoError(t, g.PlaceBet("ana", 25))
	r, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, Result{PlayerID: "ana", Stake: 25, Outcome: OutcomePlayer, Net: 25}, r)
	assert.Equal(t, 25.0, l.NetBalance("ana"))
	assert.Equal(t, PhaseResult, g.Phase())
}

func TestHouseWins(t *testing.T) {
	t.Parallel()
	g, l := newGame(t, randutil.NewFixedCoin(false))

	require.NoError(t, g.PlaceBet("ana", 10))
	require.NoError(t, g.PlaceBet("ana", 5), "later bet replaces the first")
	r, err := g.Play()
	require.NoError(t, err)
	assert.Equal(t, OutcomeHouse, r.Outcome)
	assert.Equal(t, 5.0, l.NetBalance("cy"))
	assert.Equal(t, -5.0, g.Players()[0].Chips)
}

func TestGuards(t *testing.T) {
	t.Parallel()
	g, _ := newGame(t, randutil.CryptoCoin{})

	_, err := g.Play()
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.ErrorIs(t, g.PlaceBet("cy", 5), ErrDealerCannotBet)
	assert.ErrorIs(t, g.PlaceBet("ana", 0), ErrInvalidAmount)

	require.NoError(t, g.PlaceBet("ana", 5))
	_, err = g.Play()
	require.NoError(t, err)
	assert.ErrorIs(t, g.PlaceBet("ana", 5), ErrWrongPhase)

	require.NoError(t, g.ResetRound())
	id, amount := g.Stake()
	assert.Empty(t, id)
	assert.Zero(t, amount)
	assert.Equal(t, PhaseIdle, g.Phase())
}
