package session

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/baccarat"
	"github.com/lox/chipless/internal/blackjack"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/pulse"
	"github.com/lox/chipless/internal/randutil"
	"github.com/lox/chipless/internal/roulette"
)

// Game names accepted by configuration and the CLI.
const (
	GameBlackjack = "blackjack"
	GameBaccarat  = "baccarat"
	GameRoulette  = "roulette"
	GamePulse     = "pulse"
)

// Games lists every supported game.
var Games = []string{GameBlackjack, GameBaccarat, GameRoulette, GamePulse}

// seater is the roster surface every engine exposes.
type seater interface {
	AddPlayer(id, name string) error
	SetDealer(id string) error
}

func seat(r *Roster, g seater) error {
	if err := r.Ready(); err != nil {
		return err
	}
	for _, m := range r.Members() {
		if err := g.AddPlayer(m.ID, m.Name); err != nil {
			return fmt.Errorf("seat %s: %w", m.Name, err)
		}
	}
	d, _ := r.Dealer()
	return g.SetDealer(d.ID)
}

// NewBlackjack builds a started blackjack engine for the roster.
func NewBlackjack(r *Roster, l *ledger.Ledger, shoe *deck.Shoe, logger *log.Logger) (*blackjack.Engine, error) {
	e := blackjack.New(shoe, l, blackjack.WithLogger(logger))
	if err := seat(r, e); err != nil {
		return nil, err
	}
	if err := e.Start(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewBaccarat builds a baccarat table for the roster.
func NewBaccarat(r *Roster, l *ledger.Ledger, shoe *deck.Shoe, logger *log.Logger) (*baccarat.Table, error) {
	t := baccarat.New(shoe, l, logger)
	if err := seat(r, t); err != nil {
		return nil, err
	}
	return t, nil
}

// NewRoulette builds a roulette wheel for the roster.
func NewRoulette(r *Roster, l *ledger.Ledger, coin randutil.Coin, logger *log.Logger) (*roulette.Wheel, error) {
	w := roulette.New(coin, l, logger)
	if err := seat(r, w); err != nil {
		return nil, err
	}
	return w, nil
}

// NewPulse builds a pulse game for the roster.
func NewPulse(r *Roster, l *ledger.Ledger, coin randutil.Coin, logger *log.Logger) (*pulse.Game, error) {
	g := pulse.New(coin, l, logger)
	if err := seat(r, g); err != nil {
		return nil, err
	}
	return g, nil
}
