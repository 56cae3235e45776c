package blackjack

import "errors"

// Rejected actions return one of these (possibly wrapped) and leave the
// engine unchanged.
var (
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrNotYourTurn      = errors.New("no player is due to act")
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrInvalidPlayer    = errors.New("player id and name are required")
	ErrDuplicatePlayer  = errors.New("player already seated")
	ErrDealerCannotBet  = errors.New("the dealer cannot bet")
	ErrInvalidAmount    = errors.New("bet amount must be positive")
	ErrNoBets           = errors.New("no bets placed")
	ErrCannotSplit      = errors.New("hand cannot be split")
	ErrCannotDouble     = errors.New("hand cannot be doubled")
	ErrCannotHit        = errors.New("hand cannot take another card")
	ErrNotEnoughPlayers = errors.New("need at least 2 players")
	ErrNoDealer         = errors.New("no dealer selected")
)
