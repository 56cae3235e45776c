package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "pair of aces",
			input: "As Ah",
			expected: []Card{
				{Suit: Spades, Rank: Ace},
				{Suit: Hearts, Rank: Ace},
			},
		},
		{
			name:  "tens in both spellings",
			input: "Td 10c",
			expected: []Card{
				{Suit: Diamonds, Rank: Ten},
				{Suit: Clubs, Rank: Ten},
			},
		},
		{
			name:  "case insensitive",
			input: "kH qd",
			expected: []Card{
				{Suit: Hearts, Rank: King},
				{Suit: Diamonds, Rank: Queen},
			},
		},
		{name: "invalid rank", input: "Xs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "too long", input: "100s", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card      string
		blackjack int
		baccarat  int
	}{
		{"2h", 2, 2},
		{"9c", 9, 9},
		{"Td", 10, 0},
		{"Js", 10, 0},
		{"Qh", 10, 0},
		{"Kc", 10, 0},
		{"Ad", 11, 1},
	}

	for _, tt := range tests {
		t.Run(tt.card, func(t *testing.T) {
			c := MustParseCards(tt.card)[0]
			assert.Equal(t, tt.blackjack, c.Value())
			assert.Equal(t, tt.baccarat, c.BaccaratValue())
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "A♠", NewCard(Spades, Ace).String())
	assert.Equal(t, "10♥", NewCard(Hearts, Ten).String())
	assert.True(t, NewCard(Diamonds, Two).IsRed())
	assert.False(t, NewCard(Clubs, Two).IsRed())
}
