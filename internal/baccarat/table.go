package baccarat

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/table"
)

var (
	ErrWrongPhase      = table.ErrWrongPhase
	ErrUnknownPlayer   = table.ErrUnknownPlayer
	ErrInvalidAmount   = table.ErrInvalidAmount
	ErrNoBets          = table.ErrNoBets
	ErrDealerCannotBet = table.ErrDealerCannotBet
	ErrNoDealer        = table.ErrNoDealer
)

// BetType is the outcome a stake is placed on.
type BetType int

const (
	BetPlayer BetType = iota
	BetBanker
	BetTie
)

// BetTypes lists every bet type in display order.
var BetTypes = []BetType{BetPlayer, BetBanker, BetTie}

func (b BetType) String() string {
	switch b {
	case BetPlayer:
		return "player"
	case BetBanker:
		return "banker"
	case BetTie:
		return "tie"
	default:
		return "unknown"
	}
}

// ParseBetType accepts "player", "banker" or "tie" and their first letter.
func ParseBetType(s string) (BetType, error) {
	switch strings.ToLower(s) {
	case "player", "p":
		return BetPlayer, nil
	case "banker", "b":
		return BetBanker, nil
	case "tie", "t":
		return BetTie, nil
	}
	return 0, fmt.Errorf("unknown bet type %q", s)
}

// Net returns the bettor's net result for a stake on bet when w wins.
func Net(bet BetType, w Winner, stake float64) float64 {
	switch {
	case bet == BetTie && w == WinnerTie:
		return 8 * stake
	case w == WinnerTie:
		return 0
	case bet == BetPlayer && w == WinnerPlayer:
		return stake
	case bet == BetBanker && w == WinnerBanker:
		return 0.95 * stake
	default:
		return -stake
	}
}

// Phase is the table state.
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseResolution
)

func (p Phase) String() string {
	if p == PhaseBetting {
		return "betting"
	}
	return "resolution"
}

// Settlement is the result of one stake.
type Settlement struct {
	PlayerID string
	Bet      BetType
	Stake    float64
	Net      float64
}

// Table runs baccarat rounds for a roster with one dealer acting as the bank.
type Table struct {
	seats   table.Seats
	shoe    *deck.Shoe
	settler table.Settler
	logger  *log.Logger
	phase   Phase
	bets    map[string]map[BetType]float64
	last    *Coup
}

// New returns a table open for betting.
func New(shoe *deck.Shoe, settler table.Settler, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Table{
		shoe:    shoe,
		settler: settler,
		logger:  logger.WithPrefix("baccarat"),
		bets:    make(map[string]map[BetType]float64),
	}
}

// AddPlayer seats a player.
func (t *Table) AddPlayer(id, name string) error { return t.seats.Add(id, name) }

// SetDealer designates the bank.
func (t *Table) SetDealer(id string) error { return t.seats.SetDealer(id) }

// Players returns the seats in order.
func (t *Table) Players() []*table.Seat { return t.seats.All() }

// Dealer returns the dealer seat.
func (t *Table) Dealer() *table.Seat { return t.seats.Dealer() }

// Phase returns the current phase.
func (t *Table) Phase() Phase { return t.phase }

// Last returns the most recent coup, or nil.
func (t *Table) Last() *Coup { return t.last }

// PlaceBet adds amount to the player's stake on bet.
func (t *Table) PlaceBet(id string, bet BetType, amount float64) error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot bet during %s", ErrWrongPhase, t.phase)
	}
	seat, err := t.seats.Bettor(id, amount)
	if err != nil {
		return err
	}
	row, ok := t.bets[seat.ID]
	if !ok {
		row = make(map[BetType]float64)
		t.bets[seat.ID] = row
	}
	row[bet] += amount
	return nil
}

// ClearBets removes every stake the player placed this round.
func (t *Table) ClearBets(id string) error {
	if t.phase != PhaseBetting {
		return fmt.Errorf("%w: cannot clear bets during %s", ErrWrongPhase, t.phase)
	}
	if _, err := t.seats.Bettor(id, -1); err != nil {
		return err
	}
	delete(t.bets, id)
	return nil
}

// Bets returns a copy of the player's stakes.
func (t *Table) Bets(id string) map[BetType]float64 {
	out := make(map[BetType]float64, len(t.bets[id]))
	for k, v := range t.bets[id] {
		out[k] = v
	}
	return out
}

// Deal plays one coup and settles every stake against the dealer.
func (t *Table) Deal() (Coup, []Settlement, error) {
	if t.phase != PhaseBetting {
		return Coup{}, nil, fmt.Errorf("%w: cannot deal during %s", ErrWrongPhase, t.phase)
	}
	dealer := t.seats.Dealer()
	if dealer == nil {
		return Coup{}, nil, ErrNoDealer
	}
	if len(t.bets) == 0 {
		return Coup{}, nil, ErrNoBets
	}

	coup := Play(t.shoe)
	winner := coup.Winner()
	t.logger.Debug("Coup", "player", coup.PlayerScore, "banker", coup.BankerScore, "winner", winner, "natural", coup.Natural)

	var settlements []Settlement
	for _, seat := range t.seats.All() {
		row := t.bets[seat.ID]
		for _, bet := range BetTypes {
			stake := row[bet]
			if stake == 0 {
				continue
			}
			net := Net(bet, winner, stake)
			table.Settle(t.settler, dealer, seat, net)
			settlements = append(settlements, Settlement{PlayerID: seat.ID, Bet: bet, Stake: stake, Net: net})
		}
	}

	t.last = &coup
	t.phase = PhaseResolution
	return coup, settlements, nil
}

// ResetRound clears stakes and reopens betting.
func (t *Table) ResetRound() error {
	t.bets = make(map[string]map[BetType]float64)
	t.phase = PhaseBetting
	return nil
}
