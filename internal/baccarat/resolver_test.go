package baccarat

import (
	"strings"
	"testing"

	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stackedShoe(cards string) *deck.Shoe {
	script := deck.MustParseCards(cards)
	pad := deck.MustParseCards(strings.Repeat("Kc ", 30))
	return deck.NewStackedShoe(randutil.New(1), append(script, pad...)...)
}

func TestPlay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cards   string // dealt P, B, P, B, then third cards
		player  string
		banker  string
		winner  Winner
		natural bool
	}{
		{
			name:    "banker natural eight",
			cards:   "5h 6d 2c 2s",
			player:  "5h 2c",
			banker:  "6d 2s",
			winner:  WinnerBanker,
			natural: true,
		},
		{
			name:   "banker four draws on player six",
			cards:  "2h Kh 3d 4c 6s 5d",
			player: "2h 3d 6s",
			banker: "Kh 4c 5d",
			winner: WinnerBanker,
		},
		{
			name:   "player stands on six and banker five draws",
			cards:  "Kh 2h 6d 3c 4s",
			player: "Kh 6d",
			banker: "2h 3c 4s",
			winner: WinnerBanker,
		},
		{
			name:   "player stands on seven and banker six stands",
			cards:  "Kh 3h 7d 3c",
			player: "Kh 7d",
			banker: "3h 3c",
			winner: WinnerPlayer,
		},
		{
			name:   "banker three stands on player eight",
			cards:  "Ah Kh 4d 3c 8s",
			player: "Ah 4d 8s",
			banker: "Kh 3c",
			winner: WinnerTie,
		},
		{
			name:    "player natural nine",
			cards:   "4h Kh 5d 7c",
			player:  "4h 5d",
			banker:  "Kh 7c",
			winner:  WinnerPlayer,
			natural: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Play(stackedShoe(tt.cards))
			assert.Equal(t, deck.MustParseCards(tt.player), c.Player)
			assert.Equal(t, deck.MustParseCards(tt.banker), c.Banker)
			assert.Equal(t, tt.winner, c.Winner())
			assert.Equal(t, tt.natural, c.Natural)
		})
	}
}

func TestBankerDrawsTable(t *testing.T) {
	t.Parallel()

	// drawsOn maps banker score to the player third-card values it draws on.
	drawsOn := map[int][]int{
		0: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		1: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		2: {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		3: {0, 1, 2, 3, 4, 5, 6, 7, 9},
		4: {2, 3, 4, 5, 6, 7},
		5: {4, 5, 6, 7},
		6: {6, 7},
		7: {},
	}
	for bankerScore, values := range drawsOn {
		for third := 0; third <= 9; third++ {
			want := false
			for _, v := range values {
				if v == third {
					want = true
				}
			}
			assert.Equal(t, want, BankerDraws(bankerScore, third, false),
				"banker %d, player third %d", bankerScore, third)
		}
	}
}

func TestBankerDrawsWhenPlayerStood(t *testing.T) {
	t.Parallel()
	for b := 0; b <= 7; b++ {
		assert.Equal(t, b <= 5, BankerDraws(b, NoThirdCard, true), "banker %d", b)
	}
}

func TestPlayerDraws(t *testing.T) {
	t.Parallel()
	assert.True(t, PlayerDraws(0))
	assert.True(t, PlayerDraws(5))
	assert.False(t, PlayerDraws(6))
	assert.False(t, PlayerDraws(7))
}

func TestPlayDrawsAtMostSixCards(t *testing.T) {
	t.Parallel()
	shoe := deck.NewShoe(randutil.New(7))
	for range 1000 {
		c := Play(shoe)
		require.GreaterOrEqual(t, len(c.Player), 2)
		require.LessOrEqual(t, len(c.Player), 3)
		require.LessOrEqual(t, len(c.Banker), 3)
		if c.Natural {
			assert.Len(t, c.Player, 2)
			assert.Len(t, c.Banker, 2)
		}
	}
}
