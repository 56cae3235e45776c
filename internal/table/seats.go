// Package table holds the seating and settlement plumbing shared by the
// single-draw games (baccarat, roulette and pulse).
package table

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrUnknownPlayer   = errors.New("unknown player")
	ErrDuplicatePlayer = errors.New("player already seated")
	ErrInvalidPlayer   = errors.New("player id and name are required")
	ErrNoDealer        = errors.New("no dealer selected")
	ErrDealerCannotBet = errors.New("the dealer cannot bet")
	ErrInvalidAmount   = errors.New("bet amount must be positive")
	ErrNoBets          = errors.New("no bets placed")
)

// Settler receives money movements between seats.
type Settler interface {
	RecordTransfer(from, to string, amount float64)
}

// Seat is a player at the table.
type Seat struct {
	ID       string
	Name     string
	IsDealer bool
	// Chips is the running chip counter; it may go negative.
	Chips float64
}

// Seats is an ordered roster with at most one dealer.
type Seats struct {
	seats  []*Seat
	dealer *Seat
}

// Add seats a player at the end of the roster.
func (s *Seats) Add(id, name string) error {
	if id == "" || name == "" {
		return ErrInvalidPlayer
	}
	if _, ok := s.Get(id); ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
	}
	s.seats = append(s.seats, &Seat{ID: id, Name: name})
	return nil
}

// SetDealer moves the dealer role to id.
func (s *Seats) SetDealer(id string) error {
	seat, ok := s.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	for _, other := range s.seats {
		other.IsDealer = false
	}
	seat.IsDealer = true
	s.dealer = seat
	return nil
}

// Get looks a seat up by id.
func (s *Seats) Get(id string) (*Seat, bool) {
	for _, seat := range s.seats {
		if seat.ID == id {
			return seat, true
		}
	}
	return nil, false
}

// Dealer returns the dealer seat or nil.
func (s *Seats) Dealer() *Seat { return s.dealer }

// All returns the seats in order.
func (s *Seats) All() []*Seat {
	return append([]*Seat(nil), s.seats...)
}

// Bettor returns the non-dealer seat id after validating amount. Pass a
// negative amount to skip the amount check.
func (s *Seats) Bettor(id string, amount float64) (*Seat, error) {
	seat, ok := s.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	if seat.IsDealer {
		return nil, ErrDealerCannotBet
	}
	if amount < 0 {
		return seat, nil
	}
	if err := ValidAmount(amount); err != nil {
		return nil, err
	}
	return seat, nil
}

// ValidAmount rejects zero, negative and non-finite stakes.
func ValidAmount(amount float64) error {
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	return nil
}

// Settle moves net between the dealer and a bettor, positive net paying the
// bettor. The chip counters mirror the transfer.
func Settle(settler Settler, dealer, bettor *Seat, net float64) {
	switch {
	case net > 0:
		transfer(settler, dealer, bettor, net)
	case net < 0:
		transfer(settler, bettor, dealer, -net)
	}
}

func transfer(settler Settler, from, to *Seat, amount float64) {
	if settler != nil {
		settler.RecordTransfer(from.ID, to.ID, amount)
	}
	from.Chips -= amount
	to.Chips += amount
}
