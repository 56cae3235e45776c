package blackjack

import (
	"context"
	"strings"
	"testing"

	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/randutil"
	"github.com/stretchr/testify/require"
)

const (
	ana = "ana"
	ben = "ben"
	cy  = "cy"
)

// stackedShoe yields cards in order, padded with twos so the reserve checks
// never rebuild the shoe mid-test.
func stackedShoe(t *testing.T, cards string) *deck.Shoe {
	t.Helper()
	script := deck.MustParseCards(cards)
	pad := deck.MustParseCards(strings.Repeat("2c ", 40))
	return deck.NewStackedShoe(randutil.New(1), append(script, pad...)...)
}

// newTable seats Ana, Ben and dealer Cy and places the given bets.
func newTable(t *testing.T, cards string, bets map[string]float64) (*Engine, *ledger.Ledger) {
	t.Helper()
	l := ledger.New(context.Background(), kvstore.NewMemory(), nil)
	e := New(stackedShoe(t, cards), l)
	require.NoError(t, e.AddPlayer(ana, "Ana"))
	require.NoError(t, e.AddPlayer(ben, "Ben"))
	require.NoError(t, e.AddPlayer(cy, "Cy"))
	require.NoError(t, e.SetDealer(cy))
	require.NoError(t, e.Start())
	for id, amount := range bets {
		require.NoError(t, e.PlaceBet(id, amount))
	}
	return e, l
}

func mustPlayer(t *testing.T, e *Engine, id string) *Player {
	t.Helper()
	p, ok := e.Player(id)
	require.True(t, ok)
	return p
}

func chipSum(e *Engine) float64 {
	var sum float64
	for _, p := range e.Players() {
		sum += p.Chips
	}
	return sum
}
