package deck

import (
	rand "math/rand/v2"
)

// Reserve thresholds. A shoe holding fewer cards than the reserve is rebuilt
// before the next draw so play never observes an empty shoe.
const (
	RoundStartReserve = 20
	PlayReserve       = 10
)

// Shoe is the shuffled source of cards for one game session. The end of the
// underlying slice is the top of the shoe.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
}

// NewShoe creates a freshly shuffled 52-card shoe using rng for shuffling.
func NewShoe(rng *rand.Rand) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	s := &Shoe{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	s.Initialize()
	return s
}

// NewStackedShoe returns a shoe whose next draws are exactly the given cards,
// first card first. Once the stack runs below a reserve and is rebuilt, the
// shoe behaves like any other shuffled shoe.
func NewStackedShoe(rng *rand.Rand, cards ...Card) *Shoe {
	s := &Shoe{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	for i, c := range cards {
		s.cards[len(cards)-1-i] = c
	}
	return s
}

// Initialize rebuilds the full 52-card set and shuffles it.
func (s *Shoe) Initialize() {
	s.cards = s.cards[:0]
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			s.cards = append(s.cards, NewCard(suit, rank))
		}
	}
	s.Shuffle()
}

// Shuffle randomizes the remaining cards with a Fisher-Yates shuffle.
func (s *Shoe) Shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card. It reports false only when the shoe
// is empty.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}
	top := len(s.cards) - 1
	card := s.cards[top]
	s.cards = s.cards[:top]
	return card, true
}

// Remaining returns the number of undrawn cards.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// EnsureReserve rebuilds the shoe when fewer than n cards remain and reports
// whether it did so.
func (s *Shoe) EnsureReserve(n int) bool {
	if len(s.cards) >= n {
		return false
	}
	s.Initialize()
	return true
}

// MustDraw ensures the reserve and draws one card.
func (s *Shoe) MustDraw(reserve int) Card {
	s.EnsureReserve(max(reserve, 1))
	card, _ := s.Draw()
	return card
}
