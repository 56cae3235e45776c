package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/lox/chipless/internal/deck"
)

// HiddenCard stands in for the dealer's hole card.
const HiddenCard = "??"

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func money(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("$%.0f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func signedMoney(v float64) string {
	v = math.Round(v*100) / 100
	switch {
	case v > 0:
		return "+" + money(v)
	case v < 0:
		return "-" + money(-v)
	default:
		return money(0)
	}
}
