package blackjack

import (
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/score"
)

// Status is a seat's state within the round.
type Status int

const (
	StatusIdle Status = iota
	StatusBetting
	StatusPlaying
	StatusStand
	StatusBust
	StatusBlackjack
	// StatusSurrender is reserved; no action produces it yet.
	StatusSurrender
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusBetting:
		return "betting"
	case StatusPlaying:
		return "playing"
	case StatusStand:
		return "stand"
	case StatusBust:
		return "bust"
	case StatusBlackjack:
		return "blackjack"
	case StatusSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Hand is a set of cards with the stake riding on it.
type Hand struct {
	Cards []deck.Card
	Bet   float64
}

// Total scores the hand.
func (h Hand) Total() score.Total { return score.Soft(h.Cards) }

// Value is the hand's best total.
func (h Hand) Value() int { return score.HardValue(h.Cards) }

// Holding is either *Single or *Split.
type Holding interface {
	hands() []Hand
	active() *Hand
}

// Single is an unsplit hand.
type Single struct {
	Hand Hand
}

func (s *Single) hands() []Hand { return []Hand{s.Hand} }
func (s *Single) active() *Hand { return &s.Hand }

// Split holds the hands created by splitting. Active indexes the hand in play.
// SplitAces restricts every hand to the single card dealt after the split.
type Split struct {
	Hands     []Hand
	Active    int
	SplitAces bool
}

func (s *Split) hands() []Hand { return s.Hands }
func (s *Split) active() *Hand { return &s.Hands[s.Active] }

// Player is one seat at the table. The dealer is a Player with IsDealer set.
type Player struct {
	ID       string
	Name     string
	IsDealer bool
	// Chips is the running chip counter; it may go negative.
	Chips     float64
	Bet       float64
	Insurance float64
	Status    Status
	Holding   Holding
}

// Hands returns a copy of every hand the player holds, in play order.
func (p *Player) Hands() []Hand {
	if p.Holding == nil {
		return nil
	}
	src := p.Holding.hands()
	out := make([]Hand, len(src))
	for i, h := range src {
		out[i] = Hand{Cards: append([]deck.Card(nil), h.Cards...), Bet: h.Bet}
	}
	return out
}

// Cards returns the cards of the hand in play, or nil.
func (p *Player) Cards() []deck.Card {
	if p.Holding == nil {
		return nil
	}
	return append([]deck.Card(nil), p.Holding.active().Cards...)
}

// ActiveIndex is the index of the hand in play.
func (p *Player) ActiveIndex() int {
	if s, ok := p.Holding.(*Split); ok {
		return s.Active
	}
	return 0
}

// IsSplit reports whether the player has split this round.
func (p *Player) IsSplit() bool {
	_, ok := p.Holding.(*Split)
	return ok
}

func (p *Player) resetRound() {
	p.Bet = 0
	p.Insurance = 0
	p.Holding = nil
	p.Status = StatusBetting
	if p.IsDealer {
		p.Status = StatusIdle
	}
}

func (p *Player) take(c deck.Card) {
	h := p.Holding.active()
	h.Cards = append(h.Cards, c)
}
