// Package score computes hand totals for blackjack and baccarat.
package score

import (
	"strconv"

	"github.com/lox/chipless/internal/deck"
)

// Blackjack is the best total a hand may hold without busting.
const Blackjack = 21

// Total is a scored blackjack hand.
type Total struct {
	Value int
	// Soft is set when an ace still counts as 11 in Value.
	Soft bool
	// Alternate is Value with that ace counted as 1; only meaningful when Soft.
	Alternate int
}

// String renders soft totals as "7/17" and hard totals as "17".
func (t Total) String() string {
	if t.Soft {
		return strconv.Itoa(t.Alternate) + "/" + strconv.Itoa(t.Value)
	}
	return strconv.Itoa(t.Value)
}

// Soft scores a hand, counting aces as 11 and demoting them one at a time to 1
// while the total exceeds 21.
func Soft(hand []deck.Card) Total {
	total, aces := 0, 0
	for _, c := range hand {
		total += c.Value()
		if c.IsAce() {
			aces++
		}
	}
	for total > Blackjack && aces > 0 {
		total -= 10
		aces--
	}
	t := Total{Value: total}
	if aces > 0 {
		t.Soft = true
		t.Alternate = total - 10
	}
	return t
}

// HardValue returns the best non-bust total, or the minimum total when the
// hand is bust.
func HardValue(hand []deck.Card) int {
	return Soft(hand).Value
}

// IsBust reports whether the hand exceeds 21.
func IsBust(hand []deck.Card) bool {
	return HardValue(hand) > Blackjack
}

// IsNatural reports a two-card 21.
func IsNatural(hand []deck.Card) bool {
	return len(hand) == 2 && HardValue(hand) == Blackjack
}

// Baccarat returns the mod-10 baccarat score of a hand.
func Baccarat(hand []deck.Card) int {
	sum := 0
	for _, c := range hand {
		sum += c.BaccaratValue()
	}
	return sum % 10
}
