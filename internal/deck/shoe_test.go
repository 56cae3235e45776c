package deck

import (
	"testing"

	"github.com/lox/chipless/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShoeHasFullDeck(t *testing.T) {
	t.Parallel()
	s := NewShoe(randutil.New(42))
	require.Equal(t, 52, s.Remaining())

	seen := make(map[Card]bool)
	for range 52 {
		c, ok := s.Draw()
		require.True(t, ok)
		assert.False(t, seen[c], "duplicate card %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, 0, s.Remaining())

	_, ok := s.Draw()
	assert.False(t, ok, "empty shoe must report no card")
}

func TestShuffleIsSeedDeterministic(t *testing.T) {
	t.Parallel()
	a := NewShoe(randutil.New(7))
	b := NewShoe(randutil.New(7))
	c := NewShoe(randutil.New(8))

	var fromA, fromB, fromC []Card
	for range 52 {
		x, _ := a.Draw()
		y, _ := b.Draw()
		z, _ := c.Draw()
		fromA, fromB, fromC = append(fromA, x), append(fromB, y), append(fromC, z)
	}
	assert.Equal(t, fromA, fromB)
	assert.NotEqual(t, fromA, fromC)
}

func TestShuffleCoversPositions(t *testing.T) {
	t.Parallel()
	// Every card should reach the top at least once over many shuffles.
	rng := randutil.New(1)
	tops := make(map[Card]int)
	for range 5000 {
		s := NewShoe(rng)
		c, _ := s.Draw()
		tops[c]++
	}
	assert.Len(t, tops, 52)
}

func TestStackedShoeDrawsInOrder(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("Ah Kd 7c")
	s := NewStackedShoe(randutil.New(1), cards...)
	for _, want := range cards {
		got, ok := s.Draw()
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 0, s.Remaining())
}

func TestEnsureReserve(t *testing.T) {
	t.Parallel()
	s := NewShoe(randutil.New(3))
	for range 52 - RoundStartReserve {
		s.Draw()
	}
	assert.False(t, s.EnsureReserve(RoundStartReserve), "exactly at reserve keeps the shoe")
	s.Draw()
	assert.True(t, s.EnsureReserve(RoundStartReserve))
	assert.Equal(t, 52, s.Remaining())
}

func TestMustDrawRefillsEmptyShoe(t *testing.T) {
	t.Parallel()
	s := NewStackedShoe(randutil.New(3))
	_ = s.MustDraw(PlayReserve)
	assert.Equal(t, 51, s.Remaining())
}
