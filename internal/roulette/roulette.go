// Package roulette is a red-or-black even-money wheel. The dealer covers every
// bet and settles through the ledger.
package roulette

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/randutil"
	"github.com/lox/chipless/internal/table"
)

// HistorySize is how many past results are kept.
const HistorySize = 20

var (
	ErrWrongPhase      = table.ErrWrongPhase
	ErrUnknownPlayer   = table.ErrUnknownPlayer
	ErrInvalidAmount   = table.ErrInvalidAmount
	ErrDealerCannotBet = table.ErrDealerCannotBet
	ErrNoDealer        = table.ErrNoDealer
)

// Color is a bet target and a spin result.
type Color int

const (
	Red Color = iota
	Black
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// ParseColor accepts "red"/"r" and "black"/"b", case-insensitively.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "red", "r":
		return Red, nil
	case "black", "b":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown colour %q", s)
}

// Phase is the wheel state.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseSpinning
	PhasePayout
)

func (p Phase) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseSpinning:
		return "spinning"
	default:
		return "payout"
	}
}

// Bet is one player's stake.
type Bet struct {
	Color  Color
	Amount float64
}

// Settlement is the result of one bet.
type Settlement struct {
	PlayerID string
	Bet      Bet
	Net      float64
}

// Wheel runs roulette rounds.
type Wheel struct {
	seats   table.Seats
	coin    randutil.Coin
	settler table.Settler
	logger  *log.Logger

	phase   Phase
	bets    map[string]*Bet
	result  Color
	history []Color
}

// New returns a wheel open for betting. Heads on coin lands red.
func New(coin randutil.Coin, settler table.Settler, logger *log.Logger) *Wheel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Wheel{
		coin:    coin,
		settler: settler,
		logger:  logger.WithPrefix("roulette"),
		bets:    make(map[string]*Bet),
	}
}

// AddPlayer seats a player.
func (w *Wheel) AddPlayer(id, name string) error { return w.seats.Add(id, name) }

// SetDealer designates the house.
func (w *Wheel) SetDealer(id string) error { return w.seats.SetDealer(id) }

// Players returns the seats in order.
func (w *Wheel) Players() []*table.Seat { return w.seats.All() }

// Dealer returns the dealer seat.
func (w *Wheel) Dealer() *table.Seat { return w.seats.Dealer() }

// Phase returns the current phase.
func (w *Wheel) Phase() Phase { return w.phase }

// PlaceBet adds amount on color. Switching colour discards the previous stake.
func (w *Wheel) PlaceBet(id string, color Color, amount float64) error {
	if w.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot bet during %s", ErrWrongPhase, w.phase)
	}
	seat, err := w.seats.Bettor(id, amount)
	if err != nil {
		return err
	}
	b, ok := w.bets[seat.ID]
	if !ok || b.Color != color {
		b = &Bet{Color: color}
		w.bets[seat.ID] = b
	}
	b.Amount += amount
	return nil
}

// ClearBet removes the player's stake.
func (w *Wheel) ClearBet(id string) error {
	if w.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot clear bets during %s", ErrWrongPhase, w.phase)
	}
	if _, err := w.seats.Bettor(id, -1); err != nil {
		return err
	}
	delete(w.bets, id)
	return nil
}

// BetOf returns the player's current stake.
func (w *Wheel) BetOf(id string) (Bet, bool) {
	b, ok := w.bets[id]
	if !ok {
		return Bet{}, false
	}
	return *b, true
}

// Spin decides the result.
func (w *Wheel) Spin() (Color, error) {
	if w.phase != PhaseBetting {
		return 0, fmt.Errorf("%w: cannot spin during %s", ErrWrongPhase, w.phase)
	}
	if w.seats.Dealer() == nil {
		return 0, ErrNoDealer
	}
	w.result = Black
	if w.coin.Flip() {
		w.result = Red
	}
	w.phase = PhaseSpinning
	w.logger.Debug("Spin", "result", w.result)
	return w.result, nil
}

// Resolve pays even money to winners, collects from losers and records the
// result in the history.
func (w *Wheel) Resolve() ([]Settlement, error) {
	if w.phase != PhaseSpinning {
		return nil, fmt.Errorf("%w: cannot resolve during %s", ErrWrongPhase, w.phase)
	}
	dealer := w.seats.Dealer()
	var out []Settlement
	for _, seat := range w.seats.All() {
		b, ok := w.bets[seat.ID]
		if !ok || seat.IsDealer {
			continue
		}
		net := -b.Amount
		if b.Color == w.result {
			net = b.Amount
		}
		table.Settle(w.settler, dealer, seat, net)
		out = append(out, Settlement{PlayerID: seat.ID, Bet: *b, Net: net})
	}

	w.history = append([]Color{w.result}, w.history...)
	if len(w.history) > HistorySize {
		w.history = w.history[:HistorySize]
	}
	w.phase = PhasePayout
	return out, nil
}

// History returns past results, most recent first.
func (w *Wheel) History() []Color {
	return append([]Color(nil), w.history...)
}

// ResetRound clears stakes and reopens betting.
func (w *Wheel) ResetRound() error {
	if w.phase == PhaseSpinning {
		return fmt.Errorf("%w: cannot reset during %s", ErrWrongPhase, w.phase)
	}
	w.bets = make(map[string]*Bet)
	w.phase = PhaseBetting
	return nil
}
