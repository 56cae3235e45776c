package roulette

import (
	"context"
	"testing"

	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWheel(t *testing.T, outcomes ...bool) (*Wheel, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(context.Background(), kvstore.NewMemory(), nil)
	w := New(randutil.NewFixedCoin(outcomes...), l, nil)
	require.NoError(t, w.AddPlayer("ana", "Ana"))
	require.NoError(t, w.AddPlayer("ben", "Ben"))
	require.NoError(t, w.AddPlayer("cy", "Cy"))
	require.NoError(t, w.SetDealer("cy"))
	return w, l
}

func TestSpinAndResolve(t *testing.T) {
	t.Parallel()
	w, l := newWheel(t, true)

	require.NoError(t, w.PlaceBet("ana", Red, 10))
	require.NoError(t, w.PlaceBet("ben", Black, 4))

	result, err := w.Spin()
	require.NoError(t, err)
	assert.Equal(t, Red, result)

	settlements, err := w.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []Settlement{
		{PlayerID: "ana", Bet: Bet{Color: Red, Amount: 10}, Net: 10},
		{PlayerID: "ben", Bet: Bet{Color: Black, Amount: 4}, Net: -4},
	}, settlements)
	assert.Equal(t, 10.0, l.NetBalance("ana"))
	assert.Equal(t, -4.0, l.NetBalance("ben"))
	assert.Equal(t, -6.0, w.Dealer().Chips)
	assert.Equal(t, []Color{Red}, w.History())
}

func TestSwitchingColourResetsStake(t *testing.T) {
	t.Parallel()
	w, _ := newWheel(t, true)

	require.NoError(t, w.PlaceBet("ana", Red, 10))
	require.NoError(t, w.PlaceBet("ana", Red, 5))
	b, _ := w.BetOf("ana")
	assert.Equal(t, 15.0, b.Amount)

	require.NoError(t, w.PlaceBet("ana", Black, 3))
	b, _ = w.BetOf("ana")
	assert.Equal(t, Bet{Color: Black, Amount: 3}, b)
}

func TestHistoryKeepsLastTwenty(t *testing.T) {
	t.Parallel()
	outcomes := make([]bool, 25)
	for i := range outcomes {
		outcomes[i] = i%2 == 0
	}
	w, _ := newWheel(t, outcomes...)

	for range 25 {
		_, err := w.Spin()
		require.NoError(t, err)
		_, err = w.Resolve()
		require.NoError(t, err)
		require.NoError(t, w.ResetRound())
	}
	h := w.History()
	require.Len(t, h, HistorySize)
	assert.Equal(t, Red, h[0], "spin 25 was heads")
}

func TestPhaseGuards(t *testing.T) {
	t.Parallel()
	w, _ := newWheel(t, false)

	_, err := w.Resolve()
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.ErrorIs(t, w.PlaceBet("cy", Red, 1), ErrDealerCannotBet)

	_, err = w.Spin()
	require.NoError(t, err)
	assert.ErrorIs(t, w.PlaceBet("ana", Red, 1), ErrWrongPhase)
	assert.ErrorIs(t, w.ResetRound(), ErrWrongPhase)
	_, err = w.Spin()
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestParseColor(t *testing.T) {
	t.Parallel()
	c, err := ParseColor("RED")
	require.NoError(t, err)
	assert.Equal(t, Red, c)
	c, err = ParseColor("b")
	require.NoError(t, err)
	assert.Equal(t, Black, c)
	_, err = ParseColor("green")
	assert.Error(t, err)
}
