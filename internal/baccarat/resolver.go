// Package baccarat implements punto banco: the fixed third-card rules and a
// betting table settled through the ledger.
package baccarat

import (
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/score"
)

// NoThirdCard is the player third-card value when the player stood.
const NoThirdCard = -1

// Winner is the side that won a coup.
type Winner int

const (
	WinnerPlayer Winner = iota
	WinnerBanker
	WinnerTie
)

func (w Winner) String() string {
	switch w {
	case WinnerPlayer:
		return "player"
	case WinnerBanker:
		return "banker"
	default:
		return "tie"
	}
}

// Coup is one completed deal.
type Coup struct {
	Player      []deck.Card
	Banker      []deck.Card
	PlayerScore int
	BankerScore int
	Natural     bool
}

// Winner compares final scores; equal scores tie.
func (c Coup) Winner() Winner {
	switch {
	case c.PlayerScore > c.BankerScore:
		return WinnerPlayer
	case c.BankerScore > c.PlayerScore:
		return WinnerBanker
	default:
		return WinnerTie
	}
}

// PlayerDraws reports whether the player takes a third card.
func PlayerDraws(playerScore int) bool {
	return playerScore <= 5
}

// BankerDraws applies the banker's third-card table. playerThird is the
// baccarat value of the player's third card, or NoThirdCard when the player
// stood; a standing player leaves the banker drawing on 0-5 only.
func BankerDraws(bankerScore, playerThird int, playerStood bool) bool {
	if playerStood {
		return bankerScore <= 5
	}
	switch {
	case bankerScore <= 2:
		return true
	case bankerScore == 3:
		return playerThird != 8
	case bankerScore == 4:
		return playerThird >= 2 && playerThird <= 7
	case bankerScore == 5:
		return playerThird >= 4 && playerThird <= 7
	case bankerScore == 6:
		return playerThird == 6 || playerThird == 7
	default:
		return false
	}
}

// Play deals a full coup from shoe: P, B, P, B, then third cards.
func Play(shoe *deck.Shoe) Coup {
	draw := func() deck.Card { return shoe.MustDraw(deck.PlayReserve) }

	var c Coup
	c.Player = append(c.Player, draw())
	c.Banker = append(c.Banker, draw())
	c.Player = append(c.Player, draw())
	c.Banker = append(c.Banker, draw())
	c.PlayerScore = score.Baccarat(c.Player)
	c.BankerScore = score.Baccarat(c.Banker)

	if c.PlayerScore >= 8 || c.BankerScore >= 8 {
		c.Natural = true
		return c
	}

	third := NoThirdCard
	if PlayerDraws(c.PlayerScore) {
		card := draw()
		c.Player = append(c.Player, card)
		third = card.BaccaratValue()
		c.PlayerScore = score.Baccarat(c.Player)
	}
	if BankerDraws(c.BankerScore, third, len(c.Player) == 2) {
		c.Banker = append(c.Banker, draw())
		c.BankerScore = score.Baccarat(c.Banker)
	}
	return c
}
