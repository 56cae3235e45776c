package console

import (
	"strings"

	"github.com/lox/chipless/internal/baccarat"
)

func (c *Console) baccaratCommands() []*Command {
	return []*Command{
		{Name: "bet", Aliases: []string{"b"}, Usage: "bet <name> player|banker|tie <amount>", Description: "Add to a player's bet", Handler: c.bacBet},
		{Name: "clear", Usage: "clear <name>", Description: "Clear a player's bets", Handler: c.bacClear},
		{Name: "deal", Aliases: []string{"d"}, Usage: "deal", Description: "Deal the coup", Handler: c.bacDeal},
		{Name: "next", Aliases: []string{"n"}, Usage: "next", Description: "Start the next coup", Handler: c.bacNext},
	}
}

func (c *Console) bacBet(args []string) (Output, error) {
	if len(args) != 3 {
		return Output{}, usage("bet <name> player|banker|tie <amount>")
	}
	m, err := c.member(args[0])
	if err != nil {
		return Output{}, err
	}
	bet, err := baccarat.ParseBetType(args[1])
	if err != nil {
		return Output{}, err
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return Output{}, err
	}
	if err := c.bac.PlaceBet(m.ID, bet, amount); err != nil {
		return Output{}, err
	}
	var out Output
	out.add("%s bets %s on %s", m.Name, money(amount), bet)
	return out, nil
}

func (c *Console) bacClear(args []string) (Output, error) {
	if len(args) != 1 {
		return Output{}, usage("clear <name>")
	}
	m, err := c.member(args[0])
	if err != nil {
		return Output{}, err
	}
	if err := c.bac.ClearBets(m.ID); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{m.Name + " clears their bets"}}, nil
}

func (c *Console) bacDeal([]string) (Output, error) {
	coup, settlements, err := c.bac.Deal()
	if err != nil {
		return Output{}, err
	}
	var out Output
	out.add("Player: %s = %d", formatCards(coup.Player), coup.PlayerScore)
	out.add("Banker: %s = %d", formatCards(coup.Banker), coup.BankerScore)
	winner := strings.ToUpper(coup.Winner().String())
	if coup.Natural {
		out.add("Natural! %s", winner)
	} else {
		out.add("%s", winner)
	}
	for _, s := range settlements {
		out.add("%s (%s %s): %s", c.name(s.PlayerID), money(s.Stake), s.Bet, signedMoney(s.Net))
	}
	return out, nil
}

func (c *Console) bacNext([]string) (Output, error) {
	if err := c.bac.ResetRound(); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{"*** NEW COUP *** place your bets"}}, nil
}
