package console

import (
	"strings"

	"github.com/lox/chipless/internal/roulette"
)

func (c *Console) rouletteCommands() []*Command {
	return []*Command{
		{Name: "bet", Aliases: []string{"b"}, Usage: "bet <name> red|black <amount>", Description: "Add to a player's bet", Handler: c.rlBet},
		{Name: "clear", Usage: "clear <name>", Description: "Clear a player's bet", Handler: c.rlClear},
		{Name: "spin", Usage: "spin", Description: "Spin the wheel and settle", Handler: c.rlSpin},
		{Name: "history", Aliases: []string{"hist"}, Usage: "history", Description: "Show recent results", Handler: c.rlHistory},
		{Name: "next", Aliases: []string{"n"}, Usage: "next", Description: "Start the next round", Handler: c.rlNext},
	}
}

func (c *Console) rlBet(args []string) (Output, error) {
	if len(args) != 3 {
		return Output{}, usage("bet <name> red|black <amount>")
	}
	m, err := c.member(args[0])
	if err != nil {
		return Output{}, err
	}
	color, err := roulette.ParseColor(args[1])
	if err != nil {
		return Output{}, err
	}
	amount, err := parseAmount(args[2])
	if err != nil {
		return Output{}, err
	}
	if err := c.rl.PlaceBet(m.ID, color, amount); err != nil {
		return Output{}, err
	}
	b, _ := c.rl.BetOf(m.ID)
	var out Output
	out.add("%s bets %s on %s", m.Name, money(b.Amount), b.Color)
	return out, nil
}

func (c *Console) rlClear(args []string) (Output, error) {
	if len(args) != 1 {
		return Output{}, usage("clear <name>")
	}
	m, err := c.member(args[0])
	if err != nil {
		return Output{}, err
	}
	if err := c.rl.ClearBet(m.ID); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{m.Name + " clears their bet"}}, nil
}

func (c *Console) rlSpin([]string) (Output, error) {
	color, err := c.rl.Spin()
	if err != nil {
		return Output{}, err
	}
	settlements, err := c.rl.Resolve()
	if err != nil {
		return Output{}, err
	}
	var out Output
	out.add("The wheel lands on %s", strings.ToUpper(color.String()))
	for _, s := range settlements {
		out.add("%s (%s %s): %s", c.name(s.PlayerID), money(s.Bet.Amount), s.Bet.Color, signedMoney(s.Net))
	}
	return out, nil
}

func (c *Console) rlHistory([]string) (Output, error) {
	h := c.rl.History()
	if len(h) == 0 {
		return Output{Lines: []string{"No spins yet."}}, nil
	}
	parts := make([]string, len(h))
	for i, col := range h {
		parts[i] = col.String()
	}
	return Output{Lines: []string{"Recent: " + strings.Join(parts, " ")}}, nil
}

func (c *Console) rlNext([]string) (Output, error) {
	if err := c.rl.ResetRound(); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{"*** NEW ROUND *** place your bets"}}, nil
}
