package blackjack

import (
	"fmt"
	"slices"
)

// Phase is the round state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseBetting
	PhaseDealing
	PhaseInsurance
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseResolution
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhaseInsurance:
		return "insurance"
	case PhasePlayerTurn:
		return "player turn"
	case PhaseDealerTurn:
		return "dealer turn"
	case PhaseResolution:
		return "resolution"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Action names an engine operation for phase checking.
type Action int

const (
	ActAddPlayer Action = iota
	ActSetDealer
	ActStart
	ActBet
	ActDeal
	ActInsure
	ActHit
	ActStand
	ActDouble
	ActSplit
	ActDealerStep
	ActReset
)

var actionNames = map[Action]string{
	ActAddPlayer:  "add player",
	ActSetDealer:  "set dealer",
	ActStart:      "start",
	ActBet:        "bet",
	ActDeal:       "deal",
	ActInsure:     "insure",
	ActHit:        "hit",
	ActStand:      "stand",
	ActDouble:     "double",
	ActSplit:      "split",
	ActDealerStep: "play dealer",
	ActReset:      "reset round",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// allowed lists the phases each action may run in.
var allowed = map[Action][]Phase{
	ActAddPlayer:  {PhaseSetup},
	ActSetDealer:  {PhaseSetup},
	ActStart:      {PhaseSetup},
	ActBet:        {PhaseBetting},
	ActDeal:       {PhaseBetting},
	ActInsure:     {PhaseInsurance},
	ActHit:        {PhasePlayerTurn},
	ActStand:      {PhasePlayerTurn},
	ActDouble:     {PhasePlayerTurn},
	ActSplit:      {PhasePlayerTurn},
	ActDealerStep: {PhaseDealerTurn},
	ActReset:      {PhaseBetting, PhaseResolution},
}

// transitions lists the legal phase edges.
var transitions = map[Phase][]Phase{
	PhaseSetup:      {PhaseBetting},
	PhaseBetting:    {PhaseDealing},
	PhaseDealing:    {PhaseInsurance, PhasePlayerTurn},
	PhaseInsurance:  {PhasePlayerTurn, PhaseResolution},
	PhasePlayerTurn: {PhaseDealerTurn},
	PhaseDealerTurn: {PhaseResolution},
	PhaseResolution: {PhaseBetting},
}

// Allows reports whether action may run in phase p.
func (p Phase) Allows(a Action) bool {
	return slices.Contains(allowed[a], p)
}

// CanTransition reports whether next is a legal successor of p.
func (p Phase) CanTransition(next Phase) bool {
	return slices.Contains(transitions[p], next)
}

func (e *Engine) guard(a Action) error {
	if e.phase.Allows(a) {
		return nil
	}
	return fmt.Errorf("%w: cannot %s during %s", ErrWrongPhase, a, e.phase)
}

// enter moves to next. An illegal edge is a programming error in the engine.
func (e *Engine) enter(next Phase) {
	if !e.phase.CanTransition(next) {
		panic(fmt.Sprintf("blackjack: illegal phase transition %s -> %s", e.phase, next))
	}
	e.logger.Debug("Phase change", "from", e.phase, "to", next)
	e.phase = next
}
