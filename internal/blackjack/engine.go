// Package blackjack implements the turn and state engine for a blackjack
// table where one of the seated players acts as the dealer. The engine never
// sleeps or blocks; callers drive every step and pace presentation themselves.
package blackjack

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/score"
)

// DealerStandsOn is the total at which the dealer stops drawing. The dealer
// stands on every 17, soft or hard.
const DealerStandsOn = 17

// MaxHands caps the number of hands one player may split into.
const MaxHands = 4

// Settler receives every money movement between a player and the dealer.
// *ledger.Ledger satisfies it.
type Settler interface {
	RecordTransfer(from, to string, amount float64)
}

// Outcome is the result of one hand at resolution.
type Outcome int

const (
	OutcomeLose Outcome = iota
	OutcomePush
	OutcomeWin
	OutcomeBlackjack
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeWin:
		return "win"
	case OutcomeBlackjack:
		return "blackjack"
	default:
		return "unknown"
	}
}

// Result describes how one hand settled. Net is from the player's side.
type Result struct {
	PlayerID  string
	HandIndex int
	Value     int
	Outcome   Outcome
	Net       float64
}

// Dealt records a card dealt during the initial deal.
type Dealt struct {
	PlayerID string
	Card     deck.Card
	// FaceDown marks the dealer's hole card.
	FaceDown bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// Engine runs rounds of blackjack. It is not safe for concurrent use.
type Engine struct {
	phase   Phase
	players []*Player
	dealer  *Player
	shoe    *deck.Shoe
	settler Settler
	logger  *log.Logger

	current      int
	holeRevealed bool
	results      []Result
}

// New returns an engine in the setup phase.
func New(shoe *deck.Shoe, settler Settler, opts ...Option) *Engine {
	e := &Engine{
		phase:   PhaseSetup,
		shoe:    shoe,
		settler: settler,
		current: -1,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.WithPrefix("blackjack")
	return e
}

// AddPlayer seats a player. Seat order is insertion order.
func (e *Engine) AddPlayer(id, name string) error {
	if err := e.guard(ActAddPlayer); err != nil {
		return err
	}
	if id == "" || name == "" {
		return ErrInvalidPlayer
	}
	if _, ok := e.Player(id); ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
	}
	e.players = append(e.players, &Player{ID: id, Name: name, Status: StatusIdle})
	return nil
}

// SetDealer designates the dealer. Calling it again moves the role.
func (e *Engine) SetDealer(id string) error {
	if err := e.guard(ActSetDealer); err != nil {
		return err
	}
	p, ok := e.Player(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	for _, other := range e.players {
		other.IsDealer = false
	}
	p.IsDealer = true
	e.dealer = p
	return nil
}

// Start opens betting on the first round.
func (e *Engine) Start() error {
	if err := e.guard(ActStart); err != nil {
		return err
	}
	if len(e.players) < 2 {
		return ErrNotEnoughPlayers
	}
	if e.dealer == nil {
		return ErrNoDealer
	}
	e.enter(PhaseBetting)
	e.clearRound()
	return nil
}

// PlaceBet adds amount to the player's bet for this round.
func (e *Engine) PlaceBet(id string, amount float64) error {
	p, err := e.bettor(id)
	if err != nil {
		return err
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	p.Bet += amount
	e.logger.Debug("Bet placed", "player", p.Name, "amount", amount, "total", p.Bet)
	return nil
}

// ClearBet resets the player's bet to zero.
func (e *Engine) ClearBet(id string) error {
	p, err := e.bettor(id)
	if err != nil {
		return err
	}
	p.Bet = 0
	return nil
}

func (e *Engine) bettor(id string) (*Player, error) {
	if err := e.guard(ActBet); err != nil {
		return nil, err
	}
	p, ok := e.Player(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	if p.IsDealer {
		return nil, ErrDealerCannotBet
	}
	return p, nil
}

// Deal deals two cards to every seat, dealer included, one card per pass in
// seat order. Seats without a bet hold cards but never act, insure or
// settle. The round continues into insurance when the dealer shows an ace
// and into player turns otherwise.
func (e *Engine) Deal() ([]Dealt, error) {
	if err := e.guard(ActDeal); err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(e.players, func(p *Player) bool { return !p.IsDealer && p.Bet > 0 }) {
		return nil, ErrNoBets
	}
	seats := e.players

	e.enter(PhaseDealing)
	e.shoe.EnsureReserve(deck.RoundStartReserve)
	for _, p := range seats {
		p.Holding = &Single{Hand: Hand{Bet: p.Bet}}
		if !p.IsDealer && p.Bet <= 0 {
			p.Status = StatusIdle
		}
	}

	dealt := make([]Dealt, 0, 2*len(seats))
	for pass := range 2 {
		for _, p := range seats {
			c := e.shoe.MustDraw(1)
			p.take(c)
			dealt = append(dealt, Dealt{PlayerID: p.ID, Card: c, FaceDown: p.IsDealer && pass == 1})
		}
	}
	e.logger.Debug("Dealt", "seats", len(seats), "upcard", e.dealer.Cards()[0])

	if e.dealer.Cards()[0].IsAce() {
		e.enter(PhaseInsurance)
		e.current = -1
		e.nextInsurance()
		return dealt, nil
	}
	e.startPlayerTurns()
	return dealt, nil
}

// Insure records the current player's insurance decision. Accepting stakes
// half the player's bet. No balance check is made. After the last decision
// insurance resolves against the dealer's hand.
func (e *Engine) Insure(accept bool) error {
	if err := e.guard(ActInsure); err != nil {
		return err
	}
	p := e.Current()
	if p == nil {
		return ErrNotYourTurn
	}
	if accept {
		p.Insurance = p.Bet / 2
	}
	e.logger.Debug("Insurance decision", "player", p.Name, "accept", accept)
	e.nextInsurance()
	return nil
}

func (e *Engine) nextInsurance() {
	for i := e.current + 1; i < len(e.players); i++ {
		if p := e.players[i]; !p.IsDealer && p.Bet > 0 {
			e.current = i
			return
		}
	}
	e.current = -1
	e.resolveInsurance()
}

func (e *Engine) resolveInsurance() {
	dealerBlackjack := score.IsNatural(e.dealer.Cards())
	for _, p := range e.players {
		if p.IsDealer || p.Insurance == 0 {
			continue
		}
		if dealerBlackjack {
			e.transfer(e.dealer, p, 2*p.Insurance)
		} else {
			e.transfer(p, e.dealer, p.Insurance)
		}
		p.Insurance = 0
	}

	if dealerBlackjack {
		e.logger.Debug("Dealer has blackjack")
		e.holeRevealed = true
		e.dealer.Status = StatusBlackjack
		e.resolve()
		return
	}
	e.startPlayerTurns()
}

func (e *Engine) startPlayerTurns() {
	e.enter(PhasePlayerTurn)
	for _, p := range e.players {
		if p.IsDealer || p.Bet <= 0 {
			continue
		}
		p.Status = StatusPlaying
		if score.IsNatural(p.Cards()) {
			p.Status = StatusBlackjack
		}
	}
	e.current = -1
	e.advance()
}

// advance moves play to the next unfinished hand: the next hand of a split
// player first, then the next seat still playing, then the dealer.
func (e *Engine) advance() {
	if e.current >= 0 {
		p := e.players[e.current]
		if s, ok := p.Holding.(*Split); ok && p.Status == StatusPlaying {
			for s.Active+1 < len(s.Hands) {
				s.Active++
				if !s.SplitAces && s.Hands[s.Active].Value() < score.Blackjack {
					return
				}
			}
			p.Status = splitStatus(s)
		}
	}
	for i := e.current + 1; i < len(e.players); i++ {
		if p := e.players[i]; !p.IsDealer && p.Status == StatusPlaying {
			e.current = i
			return
		}
	}
	e.current = -1
	e.enter(PhaseDealerTurn)
	e.holeRevealed = true
	e.dealer.Status = StatusPlaying
}

func splitStatus(s *Split) Status {
	for _, h := range s.Hands {
		if h.Value() <= score.Blackjack {
			return StatusStand
		}
	}
	return StatusBust
}

// finish closes the active hand. Split players keep playing until their last
// hand is done.
func (e *Engine) finish(p *Player, status Status) {
	if !p.IsSplit() {
		p.Status = status
	}
	e.advance()
}

func (e *Engine) actor(a Action) (*Player, error) {
	if err := e.guard(a); err != nil {
		return nil, err
	}
	p := e.Current()
	if p == nil {
		return nil, ErrNotYourTurn
	}
	return p, nil
}

// Hit draws one card to the active hand. Busting ends the hand and so does
// reaching exactly 21.
func (e *Engine) Hit() (deck.Card, error) {
	p, err := e.actor(ActHit)
	if err != nil {
		return deck.Card{}, err
	}
	if s, ok := p.Holding.(*Split); ok && s.SplitAces {
		return deck.Card{}, ErrCannotHit
	}
	c := e.shoe.MustDraw(deck.PlayReserve)
	p.take(c)
	v := p.Holding.active().Value()
	e.logger.Debug("Hit", "player", p.Name, "card", c, "value", v)
	switch {
	case v > score.Blackjack:
		e.finish(p, StatusBust)
	case v == score.Blackjack:
		e.finish(p, StatusStand)
	}
	return c, nil
}

// Stand locks the active hand.
func (e *Engine) Stand() error {
	p, err := e.actor(ActStand)
	if err != nil {
		return err
	}
	e.finish(p, StatusStand)
	return nil
}

// CanDouble reports whether the current player may double.
func (e *Engine) CanDouble() bool {
	p := e.Current()
	return e.phase == PhasePlayerTurn && p != nil && canDouble(p)
}

func canDouble(p *Player) bool {
	if s, ok := p.Holding.(*Split); ok && s.SplitAces {
		return false
	}
	return len(p.Holding.active().Cards) == 2
}

// Double doubles the active hand's bet, draws exactly one card and ends the
// hand.
func (e *Engine) Double() (deck.Card, error) {
	p, err := e.actor(ActDouble)
	if err != nil {
		return deck.Card{}, err
	}
	if !canDouble(p) {
		return deck.Card{}, ErrCannotDouble
	}
	h := p.Holding.active()
	h.Bet *= 2
	c := e.shoe.MustDraw(deck.PlayReserve)
	h.Cards = append(h.Cards, c)
	e.logger.Debug("Double", "player", p.Name, "card", c, "bet", h.Bet)
	if h.Value() > score.Blackjack {
		e.finish(p, StatusBust)
	} else {
		e.finish(p, StatusStand)
	}
	return c, nil
}

// CanSplit reports whether the current player may split.
func (e *Engine) CanSplit() bool {
	p := e.Current()
	return e.phase == PhasePlayerTurn && p != nil && canSplit(p)
}

func canSplit(p *Player) bool {
	if s, ok := p.Holding.(*Split); ok && (s.SplitAces || len(s.Hands) >= MaxHands) {
		return false
	}
	cards := p.Holding.active().Cards
	return len(cards) == 2 && cards[0].Value() == cards[1].Value()
}

// Split separates a pair into two hands, each carrying the player's base bet,
// and deals one card to each. Split aces receive no further cards.
func (e *Engine) Split() error {
	p, err := e.actor(ActSplit)
	if err != nil {
		return err
	}
	if !canSplit(p) {
		return ErrCannotSplit
	}

	s, ok := p.Holding.(*Split)
	if !ok {
		s = &Split{Hands: []Hand{p.Holding.active().clone()}}
		p.Holding = s
	}
	idx := s.Active
	first, second := s.Hands[idx].Cards[0], s.Hands[idx].Cards[1]
	s.Hands[idx].Cards = []deck.Card{first}
	s.Hands = append(s.Hands, Hand{Cards: []deck.Card{second}, Bet: p.Bet})
	if first.IsAce() {
		s.SplitAces = true
	}

	s.Hands[idx].Cards = append(s.Hands[idx].Cards, e.shoe.MustDraw(deck.PlayReserve))
	last := len(s.Hands) - 1
	s.Hands[last].Cards = append(s.Hands[last].Cards, e.shoe.MustDraw(deck.PlayReserve))
	e.logger.Debug("Split", "player", p.Name, "hands", len(s.Hands), "aces", s.SplitAces)

	switch {
	case s.SplitAces:
		s.Active = last
		p.Status = splitStatus(s)
		e.advance()
	case s.Hands[idx].Value() == score.Blackjack:
		e.advance()
	}
	return nil
}

func (h Hand) clone() Hand {
	return Hand{Cards: append([]deck.Card(nil), h.Cards...), Bet: h.Bet}
}

// DealerStep performs one step of dealer play: below 17 the dealer draws a
// card; once the dealer holds 17 or more the round resolves in the same call.
// drew reports whether a card was drawn.
func (e *Engine) DealerStep() (card deck.Card, drew bool, err error) {
	if err := e.guard(ActDealerStep); err != nil {
		return deck.Card{}, false, err
	}
	if e.dealer.Holding.active().Value() < DealerStandsOn {
		card = e.shoe.MustDraw(deck.PlayReserve)
		e.dealer.take(card)
		drew = true
		e.logger.Debug("Dealer draws", "card", card, "value", e.dealer.Holding.active().Value())
	}
	if e.dealer.Holding.active().Value() >= DealerStandsOn {
		e.resolve()
	}
	return card, drew, nil
}

// PlayDealer runs the dealer to completion and returns the drawn cards.
func (e *Engine) PlayDealer() ([]deck.Card, error) {
	if err := e.guard(ActDealerStep); err != nil {
		return nil, err
	}
	var drawn []deck.Card
	for e.phase == PhaseDealerTurn {
		c, drew, err := e.DealerStep()
		if err != nil {
			return drawn, err
		}
		if drew {
			drawn = append(drawn, c)
		}
	}
	return drawn, nil
}

// resolve settles every hand against the dealer.
func (e *Engine) resolve() {
	e.enter(PhaseResolution)
	dealerCards := e.dealer.Cards()
	dv := score.HardValue(dealerCards)
	dealerNatural := score.IsNatural(dealerCards)
	switch {
	case dv > score.Blackjack:
		e.dealer.Status = StatusBust
	case dealerNatural:
		e.dealer.Status = StatusBlackjack
	default:
		e.dealer.Status = StatusStand
	}

	e.results = e.results[:0]
	for _, p := range e.players {
		if p.IsDealer || p.Bet <= 0 || p.Holding == nil {
			continue
		}
		for i, h := range p.Holding.hands() {
			r := settleHand(h, !p.IsSplit(), dv, dealerNatural)
			r.PlayerID, r.HandIndex = p.ID, i
			e.results = append(e.results, r)
			switch {
			case r.Net > 0:
				e.transfer(e.dealer, p, r.Net)
			case r.Net < 0:
				e.transfer(p, e.dealer, -r.Net)
			}
			e.logger.Debug("Hand settled", "player", p.Name, "hand", i, "outcome", r.Outcome, "net", r.Net)
		}
	}
}

// settleHand decides one hand. Only an unsplit hand can be a natural.
func settleHand(h Hand, unsplit bool, dealerValue int, dealerNatural bool) Result {
	v := h.Value()
	r := Result{Value: v}
	switch {
	case v > score.Blackjack:
		r.Outcome, r.Net = OutcomeLose, -h.Bet
	case unsplit && score.IsNatural(h.Cards):
		if dealerNatural {
			r.Outcome = OutcomePush
		} else {
			r.Outcome, r.Net = OutcomeBlackjack, 1.5*h.Bet
		}
	case dealerValue > score.Blackjack || v > dealerValue:
		r.Outcome, r.Net = OutcomeWin, h.Bet
	case v < dealerValue:
		r.Outcome, r.Net = OutcomeLose, -h.Bet
	default:
		r.Outcome = OutcomePush
	}
	return r
}

// transfer moves amount from one seat to another through the settler and
// mirrors it on the chip counters.
func (e *Engine) transfer(from, to *Player, amount float64) {
	if amount <= 0 {
		return
	}
	if e.settler != nil {
		e.settler.RecordTransfer(from.ID, to.ID, amount)
	}
	from.Chips -= amount
	to.Chips += amount
}

// ResetRound clears every per-round field and reopens betting. Chips and
// ledger debts are untouched, so calling it twice is harmless.
func (e *Engine) ResetRound() error {
	if err := e.guard(ActReset); err != nil {
		return err
	}
	if e.phase != PhaseBetting {
		e.enter(PhaseBetting)
	}
	e.clearRound()
	e.shoe.EnsureReserve(deck.RoundStartReserve)
	return nil
}

func (e *Engine) clearRound() {
	for _, p := range e.players {
		p.resetRound()
	}
	e.current = -1
	e.holeRevealed = false
	e.results = nil
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Players returns the seats in order, dealer included.
func (e *Engine) Players() []*Player {
	return append([]*Player(nil), e.players...)
}

// Player looks a seat up by id.
func (e *Engine) Player(id string) (*Player, bool) {
	for _, p := range e.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Current is the player due to act during insurance or player turns, or nil.
func (e *Engine) Current() *Player {
	if e.current < 0 || e.current >= len(e.players) {
		return nil
	}
	return e.players[e.current]
}

// Dealer returns the dealer seat, or nil before one is chosen.
func (e *Engine) Dealer() *Player { return e.dealer }

// HoleRevealed reports whether the dealer's second card is face up.
func (e *Engine) HoleRevealed() bool { return e.holeRevealed }

// Results returns the settlements of the last resolved round.
func (e *Engine) Results() []Result {
	return append([]Result(nil), e.results...)
}
