package console

import (
	"fmt"
	"strings"

	"github.com/lox/chipless/internal/blackjack"
)

func (c *Console) blackjackCommands() []*Command {
	return []*Command{
		{Name: "bet", Aliases: []string{"b"}, Usage: "bet <name> <amount>", Description: "Add to a player's bet", Handler: c.bjBet},
		{Name: "clear", Usage: "clear <name>", Description: "Clear a player's bet", Handler: c.bjClear},
		{Name: "deal", Aliases: []string{"d"}, Usage: "deal", Description: "Deal the round", Handler: c.bjDeal},
		{Name: "insure", Aliases: []string{"ins"}, Usage: "insure yes|no", Description: "Answer the insurance offer", Handler: c.bjInsure},
		{Name: "hit", Aliases: []string{"h"}, Usage: "hit", Description: "Take a card", Handler: c.bjHit},
		{Name: "stand", Aliases: []string{"s"}, Usage: "stand", Description: "Keep the hand", Handler: c.bjStand},
		{Name: "double", Aliases: []string{"dd"}, Usage: "double", Description: "Double the bet and take one card", Handler: c.bjDouble},
		{Name: "split", Aliases: []string{"sp"}, Usage: "split", Description: "Split a pair", Handler: c.bjSplit},
		{Name: "dealer", Usage: "dealer", Description: "Play one dealer step", Handler: func([]string) (Output, error) { return c.DealerStep() }},
		{Name: "table", Aliases: []string{"t"}, Usage: "table", Description: "Show the table", Handler: c.bjTable},
		{Name: "next", Aliases: []string{"n"}, Usage: "next", Description: "Start the next round", Handler: c.bjNext},
	}
}

func (c *Console) bjBet(args []string) (Output, error) {
	if len(args) != 2 {
		return Output{}, usage("bet <name> <amount>")
	}
	m, err := c.member(args[0])
	if err != nil {
		return Output{}, err
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return Output{}, err
	}
	if err := c.bj.PlaceBet(m.ID, amount); err != nil {
		return Output{}, err
	}
	p, _ := c.bj.Player(m.ID)
	return Output{Lines: []string{fmt.Sprintf("%s bets %s (total %s)", m.Name, money(amount), money(p.Bet))}}, nil
}

func (c *Console) bjClear(args []string) (Output, error) {
	if len(args) != 1 {
		return Output{}, usage("clear <name>")
	}
	m, err := c.member(args[0])
	if err != nil {
		return Output{}, err
	}
	if err := c.bj.ClearBet(m.ID); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{m.Name + " clears their bet"}}, nil
}

func (c *Console) bjDeal([]string) (Output, error) {
	if _, err := c.bj.Deal(); err != nil {
		return Output{}, err
	}
	out := Output{Lines: []string{"*** DEAL ***"}}
	out.Lines = append(out.Lines, c.bjTableLines()...)
	return c.bjAfter(out), nil
}

func (c *Console) bjInsure(args []string) (Output, error) {
	if len(args) != 1 {
		return Output{}, usage("insure yes|no")
	}
	var accept bool
	switch strings.ToLower(args[0]) {
	case "yes", "y":
		accept = true
	case "no", "n":
	default:
		return Output{}, usage("insure yes|no")
	}
	p := c.bj.Current()
	if err := c.bj.Insure(accept); err != nil {
		return Output{}, err
	}
	var out Output
	if accept {
		out.add("%s takes insurance for %s", p.Name, money(p.Insurance))
	} else {
		out.add("%s declines insurance", p.Name)
	}
	if c.bj.Phase() != blackjack.PhaseInsurance {
		if c.bj.Dealer().Status == blackjack.StatusBlackjack {
			out.add("Dealer has blackjack! %s", formatCards(c.bj.Dealer().Cards()))
		} else {
			out.add("Dealer does not have blackjack")
		}
	}
	return c.bjAfter(out), nil
}

func (c *Console) bjHit([]string) (Output, error) {
	p := c.bj.Current()
	card, err := c.bj.Hit()
	if err != nil {
		return Output{}, err
	}
	var out Output
	out.add("%s hits: %s", p.Name, card)
	out.Lines = append(out.Lines, c.bjPlayerLine(p))
	return c.bjAfter(out), nil
}

func (c *Console) bjStand([]string) (Output, error) {
	p := c.bj.Current()
	if err := c.bj.Stand(); err != nil {
		return Output{}, err
	}
	return c.bjAfter(Output{Lines: []string{p.Name + " stands"}}), nil
}

func (c *Console) bjDouble([]string) (Output, error) {
	p := c.bj.Current()
	card, err := c.bj.Double()
	if err != nil {
		return Output{}, err
	}
	var out Output
	out.add("%s doubles and draws %s", p.Name, card)
	out.Lines = append(out.Lines, c.bjPlayerLine(p))
	return c.bjAfter(out), nil
}

func (c *Console) bjSplit([]string) (Output, error) {
	p := c.bj.Current()
	if err := c.bj.Split(); err != nil {
		return Output{}, err
	}
	var out Output
	out.add("%s splits", p.Name)
	out.Lines = append(out.Lines, c.bjPlayerLine(p))
	return c.bjAfter(out), nil
}

// DealerStep plays one dealer step and reports whether more remain.
func (c *Console) DealerStep() (Output, error) {
	if c.bj == nil {
		return Output{}, fmt.Errorf("%w: dealer", ErrUnknownCommand)
	}
	card, drew, err := c.bj.DealerStep()
	if err != nil {
		return Output{}, err
	}
	var out Output
	d := c.bj.Dealer()
	if drew {
		out.add("Dealer draws %s: %s %s", card, formatCards(d.Cards()), d.Hands()[0].Total())
	} else {
		out.add("Dealer stands: %s %s", formatCards(d.Cards()), d.Hands()[0].Total())
	}
	return c.bjAfter(out), nil
}

// DealerPending reports whether the blackjack dealer still has to play.
func (c *Console) DealerPending() bool {
	return c.bj != nil && c.bj.Phase() == blackjack.PhaseDealerTurn
}

func (c *Console) bjTable([]string) (Output, error) {
	return Output{Lines: c.bjTableLines()}, nil
}

func (c *Console) bjNext([]string) (Output, error) {
	if err := c.bj.ResetRound(); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{"*** NEW ROUND *** place your bets"}}, nil
}

// bjAfter appends the turn prompt, or the results once the round resolved.
func (c *Console) bjAfter(out Output) Output {
	switch c.bj.Phase() {
	case blackjack.PhaseDealerTurn:
		if len(out.Lines) == 0 || !strings.HasPrefix(out.Lines[len(out.Lines)-1], "Dealer") {
			out.add("Dealer reveals %s %s", formatCards(c.bj.Dealer().Cards()), c.bj.Dealer().Hands()[0].Total())
		}
		out.DealerPending = true
	case blackjack.PhaseResolution:
		out.add("*** RESULTS ***")
		for _, r := range c.bj.Results() {
			p, _ := c.bj.Player(r.PlayerID)
			label := p.Name
			if p.IsSplit() {
				label = fmt.Sprintf("%s (hand %d)", p.Name, r.HandIndex+1)
			}
			out.add("%s: %d %s %s", label, r.Value, r.Outcome, signedMoney(r.Net))
		}
	case blackjack.PhaseInsurance:
		if p := c.bj.Current(); p != nil {
			out.add("Dealer shows an ace. Insurance for %s (%s)? insure yes|no", p.Name, money(p.Bet/2))
		}
	case blackjack.PhasePlayerTurn:
		if p := c.bj.Current(); p != nil {
			out.add("%s to act: %s", p.Name, strings.Join(c.bjOptions(), ", "))
		}
	}
	return out
}

func (c *Console) bjOptions() []string {
	opts := []string{"hit", "stand"}
	if c.bj.CanDouble() {
		opts = append(opts, "double")
	}
	if c.bj.CanSplit() {
		opts = append(opts, "split")
	}
	return opts
}

func (c *Console) bjTableLines() []string {
	var lines []string
	d := c.bj.Dealer()
	if cards := d.Cards(); len(cards) > 0 {
		if c.bj.HoleRevealed() {
			lines = append(lines, fmt.Sprintf("Dealer %s: %s %s", d.Name, formatCards(cards), d.Hands()[0].Total()))
		} else {
			lines = append(lines, fmt.Sprintf("Dealer %s: [%s %s]", d.Name, cards[0], HiddenCard))
		}
	}
	for _, p := range c.bj.Players() {
		if p.IsDealer || p.Holding == nil {
			continue
		}
		lines = append(lines, c.bjPlayerLine(p))
	}
	return lines
}

func (c *Console) bjPlayerLine(p *blackjack.Player) string {
	if p.Bet <= 0 {
		return fmt.Sprintf("%s: %s sitting out", p.Name, formatCards(p.Cards()))
	}
	var hands []string
	for i, h := range p.Hands() {
		s := fmt.Sprintf("%s %s", formatCards(h.Cards), h.Total())
		if p.IsSplit() && i == p.ActiveIndex() && p.Status == blackjack.StatusPlaying {
			s = "> " + s
		}
		hands = append(hands, s)
	}
	bet := p.Bet
	if hs := p.Hands(); len(hs) == 1 {
		bet = hs[0].Bet
	}
	return fmt.Sprintf("%s: %s bet %s (%s)", p.Name, strings.Join(hands, " | "), money(bet), p.Status)
}

func (c *Console) blackjackPrompt() string {
	switch c.bj.Phase() {
	case blackjack.PhaseBetting:
		return "Blackjack: bet <name> <amount>, then deal"
	case blackjack.PhaseInsurance:
		if p := c.bj.Current(); p != nil {
			return fmt.Sprintf("Insurance for %s? insure yes|no", p.Name)
		}
	case blackjack.PhasePlayerTurn:
		if p := c.bj.Current(); p != nil {
			return fmt.Sprintf("%s to act: %s", p.Name, strings.Join(c.bjOptions(), ", "))
		}
	case blackjack.PhaseDealerTurn:
		return "Dealer is playing..."
	case blackjack.PhaseResolution:
		return "Round over: next to play again"
	}
	return ""
}
