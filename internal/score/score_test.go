package score

import (
	"testing"

	"github.com/lox/chipless/internal/deck"
	"github.com/stretchr/testify/assert"
)

func TestSoft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		hand      string
		value     int
		soft      bool
		alternate int
	}{
		{"ace king", "As Kd", 21, true, 11},
		{"two aces and nine", "As Ah 9c", 21, true, 11},
		{"bust without aces", "Td Th 5c", 25, false, 0},
		{"soft seventeen", "Ah 6d", 17, true, 7},
		{"ace demoted", "Ah 6d Tc", 17, false, 0},
		{"two aces", "Ah Ad", 12, true, 2},
		{"four aces", "Ah Ad As Ac", 14, true, 4},
		{"empty", "", 0, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Soft(deck.MustParseCards(tt.hand))
			assert.Equal(t, tt.value, got.Value)
			assert.Equal(t, tt.soft, got.Soft)
			if tt.soft {
				assert.Equal(t, tt.alternate, got.Alternate)
			}
			assert.Equal(t, tt.value, HardValue(deck.MustParseCards(tt.hand)))
		})
	}
}

func TestTotalString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "7/17", Soft(deck.MustParseCards("Ah 6d")).String())
	assert.Equal(t, "20", Soft(deck.MustParseCards("Kh Qd")).String())
}

func TestIsNatural(t *testing.T) {
	t.Parallel()
	assert.True(t, IsNatural(deck.MustParseCards("Ah Jd")))
	assert.False(t, IsNatural(deck.MustParseCards("7h 7d 7c")))
	assert.False(t, IsNatural(deck.MustParseCards("Ah 9d")))
	assert.True(t, IsBust(deck.MustParseCards("Kh Qd 2c")))
}

func TestBaccarat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hand string
		want int
	}{
		{"5h 2d", 7},
		{"6h 2d", 8},
		{"Kh Qd", 0},
		{"Ah 9d", 0},
		{"9h 9d", 8},
		{"Ah 3d 5c", 9},
	}
	for _, tt := range tests {
		t.Run(tt.hand, func(t *testing.T) {
			assert.Equal(t, tt.want, Baccarat(deck.MustParseCards(tt.hand)))
		})
	}
}
