// Package pulse is a single-bettor coin flip against the house. Outcomes come
// from a cryptographic source so no seed can predict them.
package pulse

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/randutil"
	"github.com/lox/chipless/internal/table"
)

var (
	ErrWrongPhase      = table.ErrWrongPhase
	ErrUnknownPlayer   = table.ErrUnknownPlayer
	ErrInvalidAmount   = table.ErrInvalidAmount
	ErrDealerCannotBet = table.ErrDealerCannotBet
	ErrNoDealer        = table.ErrNoDealer
	ErrNoBets          = table.ErrNoBets
)

// Outcome names the winner of a pulse.
type Outcome int

const (
	OutcomePlayer Outcome = iota
	OutcomeHouse
)

func (o Outcome) String() string {
	if o == OutcomePlayer {
		return "player"
	}
	return "house"
}

// Phase is the game state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseBetting
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseBetting:
		return "betting"
	default:
		return "result"
	}
}

// Result is a settled pulse. Net is from the bettor's side.
type Result struct {
	PlayerID string
	Stake    float64
	Outcome  Outcome
	Net      float64
}

// Game is one pulse table.
type Game struct {
	seats   table.Seats
	coin    randutil.Coin
	settler table.Settler
	logger  *log.Logger

	phase  Phase
	bettor *table.Seat
	stake  float64
	last   *Result
}

// New returns an idle game. Pass randutil.CryptoCoin{} outside tests.
func New(coin randutil.Coin, settler table.Settler, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{coin: coin, settler: settler, logger: logger.WithPrefix("pulse")}
}

// AddPlayer seats a player.
func (g *Game) AddPlayer(id, name string) error { return g.seats.Add(id, name) }

// SetDealer designates the house.
func (g *Game) SetDealer(id string) error { return g.seats.SetDealer(id) }

// Players returns the seats in order.
func (g *Game) Players() []*table.Seat { return g.seats.All() }

// Dealer returns the dealer seat.
func (g *Game) Dealer() *table.Seat { return g.seats.Dealer() }

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Last returns the most recent result, or nil.
func (g *Game) Last() *Result { return g.last }

// Stake returns the pending bettor and stake.
func (g *Game) Stake() (id string, amount float64) {
	if g.bettor == nil {
		return "", 0
	}
	return g.bettor.ID, g.stake
}

// PlaceBet makes id the round's only bettor with the given stake, replacing
// any earlier bet.
func (g *Game) PlaceBet(id string, amount float64) error {
	if g.phase == PhaseResult {
		return fmt.Errorf("%w: cannot bet during %s", ErrWrongPhase, g.phase)
	}
	seat, err := g.seats.Bettor(id, amount)
	if err != nil {
		return err
	}
	g.bettor, g.stake = seat, amount
	g.phase = PhaseBetting
	return nil
}

// Play draws the outcome and settles it even money against the dealer.
func (g *Game) Play() (Result, error) {
	if g.phase != PhaseBetting {
		return Result{}, fmt.Errorf("%w: cannot play during %s", ErrWrongPhase, g.phase)
	}
	dealer := g.seats.Dealer()
	if dealer == nil {
		return Result{}, ErrNoDealer
	}
	if g.bettor == nil {
		return Result{}, ErrNoBets
	}

	r := Result{PlayerID: g.bettor.ID, Stake: g.stake, Outcome: OutcomeHouse, Net: -g.stake}
	if g.coin.Flip() {
		r.Outcome, r.Net = OutcomePlayer, g.stake
	}
	table.Settle(g.settler, dealer, g.bettor, r.Net)
	g.logger.Debug("Pulse", "player", g.bettor.Name, "outcome", r.Outcome, "net", r.Net)

	g.last = &r
	g.phase = PhaseResult
	return r, nil
}

// ResetRound clears the pending bet.
func (g *Game) ResetRound() error {
	g.bettor, g.stake = nil, 0
	g.phase = PhaseIdle
	return nil
}
