package console

func (c *Console) pulseCommands() []*Command {
	return []*Command{
		{Name: "bet", Aliases: []string{"b"}, Usage: "bet <name> <amount>", Description: "Stake a player against the house", Handler: c.plBet},
		{Name: "play", Aliases: []string{"p"}, Usage: "play", Description: "Fire the pulse", Handler: c.plPlay},
		{Name: "next", Aliases: []string{"n"}, Usage: "next", Description: "Start the next round", Handler: c.plNext},
	}
}

func (c *Console) plBet(args []string) (Output, error) {
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
	if err := c.pl.PlaceBet(m.ID, amount); err != nil {
		return Output{}, err
	}
	var out Output
	out.add("%s stakes %s against the house", m.Name, money(amount))
	return out, nil
}

func (c *Console) plPlay([]string) (Output, error) {
	res, err := c.pl.Play()
	if err != nil {
		return Output{}, err
	}
	var out Output
	out.add("Pulse goes to the %s", res.Outcome)
	out.add("%s: %s", c.name(res.PlayerID), signedMoney(res.Net))
	return out, nil
}

func (c *Console) plNext([]string) (Output, error) {
	if err := c.pl.ResetRound(); err != nil {
		return Output{}, err
	}
	return Output{Lines: []string{"*** NEW ROUND *** stake a player"}}, nil
}
