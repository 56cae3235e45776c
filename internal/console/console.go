// Package console turns typed commands into game actions and renders the
// results as plain text lines for the terminal front-end.
package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/baccarat"
	"github.com/lox/chipless/internal/blackjack"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/pulse"
	"github.com/lox/chipless/internal/randutil"
	"github.com/lox/chipless/internal/roulette"
	"github.com/lox/chipless/internal/session"
)

// ErrUnknownCommand is returned for input that matches no command.
var ErrUnknownCommand = errors.New("unknown command")

// Output is what one command produced.
type Output struct {
	Lines []string
	// DealerPending is set while the blackjack dealer still has to play. The
	// caller should invoke DealerStep until it clears, pacing between calls.
	DealerPending bool
	Quit          bool
}

func (o *Output) add(format string, args ...any) {
	o.Lines = append(o.Lines, fmt.Sprintf(format, args...))
}

// Command is one entry of the command table.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	Handler     func(args []string) (Output, error)
}

// Deps carries the random sources and logger the games need.
type Deps struct {
	Shoe   *deck.Shoe
	Coin   randutil.Coin
	Logger *log.Logger
}

// SeatView is a sidebar row.
type SeatView struct {
	Name     string
	IsDealer bool
	Chips    float64
	Net      float64
	Active   bool
	Status   string
}

// Console dispatches commands for one game.
type Console struct {
	game     string
	roster   *session.Roster
	ledger   *ledger.Ledger
	logger   *log.Logger
	commands map[string]*Command
	order    []*Command

	bj  *blackjack.Engine
	bac *baccarat.Table
	rl  *roulette.Wheel
	pl  *pulse.Game
}

// New builds a console and the engine for game.
func New(game string, roster *session.Roster, l *ledger.Ledger, deps Deps) (*Console, error) {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Coin == nil {
		deps.Coin = randutil.CryptoCoin{}
	}
	c := &Console{
		game:     game,
		roster:   roster,
		ledger:   l,
		logger:   deps.Logger.WithPrefix("console"),
		commands: make(map[string]*Command),
	}

	var (
		cmds []*Command
		err  error
	)
	switch game {
	case session.GameBlackjack:
		c.bj, err = session.NewBlackjack(roster, l, deps.Shoe, deps.Logger)
		cmds = c.blackjackCommands()
	case session.GameBaccarat:
		c.bac, err = session.NewBaccarat(roster, l, deps.Shoe, deps.Logger)
		cmds = c.baccaratCommands()
	case session.GameRoulette:
		c.rl, err = session.NewRoulette(roster, l, deps.Coin, deps.Logger)
		cmds = c.rouletteCommands()
	case session.GamePulse:
		c.pl, err = session.NewPulse(roster, l, deps.Coin, deps.Logger)
		cmds = c.pulseCommands()
	default:
		return nil, fmt.Errorf("unknown game %q", game)
	}
	if err != nil {
		return nil, err
	}

	for _, cmd := range append(cmds, c.commonCommands()...) {
		c.register(cmd)
	}
	return c, nil
}

func (c *Console) register(cmd *Command) {
	c.order = append(c.order, cmd)
	c.commands[cmd.Name] = cmd
	for _, a := range cmd.Aliases {
		c.commands[a] = cmd
	}
}

// Game returns the game name.
func (c *Console) Game() string { return c.game }

// Commands returns the command table in help order.
func (c *Console) Commands() []*Command {
	return append([]*Command(nil), c.order...)
}

// Execute runs one line of input.
func (c *Console) Execute(line string) (Output, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Output{}, nil
	}
	name := strings.ToLower(fields[0])
	cmd, ok := c.commands[name]
	if !ok {
		return Output{}, fmt.Errorf("%w: %s. Type 'help' for available commands", ErrUnknownCommand, name)
	}
	c.logger.Debug("Command", "name", cmd.Name, "args", fields[1:])
	return cmd.Handler(fields[1:])
}

func (c *Console) commonCommands() []*Command {
	return []*Command{
		{Name: "ledger", Aliases: []string{"debts", "l"}, Usage: "ledger", Description: "Show who owes whom", Handler: c.handleLedger},
		{Name: "balances", Aliases: []string{"bal"}, Usage: "balances", Description: "Show each player's net position", Handler: c.handleBalances},
		{Name: "reset-ledger", Usage: "reset-ledger", Description: "Clear every debt", Handler: c.handleResetLedger},
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Description: "Show available commands", Handler: c.handleHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Usage: "quit", Description: "Leave the table", Handler: func([]string) (Output, error) {
			return Output{Quit: true}, nil
		}},
	}
}

func (c *Console) handleLedger([]string) (Output, error) {
	var out Output
	debts := c.ledger.Debts()
	if len(debts) == 0 {
		out.add("All square.")
		return out, nil
	}
	for _, d := range debts {
		out.add("%s owes %s %s", c.name(d.Debtor), c.name(d.Creditor), money(d.Amount))
	}
	return out, nil
}

func (c *Console) handleBalances([]string) (Output, error) {
	var out Output
	for _, m := range c.roster.Members() {
		out.add("%-12s %s", m.Name, signedMoney(c.ledger.NetBalance(m.ID)))
	}
	return out, nil
}

func (c *Console) handleResetLedger([]string) (Output, error) {
	c.ledger.Reset()
	return Output{Lines: []string{"Ledger cleared."}}, nil
}

func (c *Console) handleHelp([]string) (Output, error) {
	var out Output
	out.add("Commands:")
	for _, cmd := range c.order {
		line := fmt.Sprintf("  %-28s %s", cmd.Usage, cmd.Description)
		if len(cmd.Aliases) > 0 {
			line += " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// member resolves a player name typed at the prompt.
func (c *Console) member(name string) (session.Member, error) {
	m, ok := c.roster.ByName(name)
	if !ok {
		return session.Member{}, fmt.Errorf("%w: %s", session.ErrUnknownMember, name)
	}
	return m, nil
}

func (c *Console) name(id string) string {
	if m, ok := c.roster.ByID(id); ok {
		return m.Name
	}
	return id
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", s)
	}
	return v, nil
}

func usage(cmd string) error {
	return fmt.Errorf("usage: %s", cmd)
}

// Seats returns the sidebar rows in seat order.
func (c *Console) Seats() []SeatView {
	var views []SeatView
	switch {
	case c.bj != nil:
		current := c.bj.Current()
		for _, p := range c.bj.Players() {
			views = append(views, SeatView{
				Name: p.Name, IsDealer: p.IsDealer, Chips: p.Chips,
				Active: current != nil && current.ID == p.ID, Status: p.Status.String(),
			})
		}
	case c.bac != nil:
		for _, s := range c.bac.Players() {
			views = append(views, SeatView{Name: s.Name, IsDealer: s.IsDealer, Chips: s.Chips, Status: betSummary(c.bac.Bets(s.ID))})
		}
	case c.rl != nil:
		for _, s := range c.rl.Players() {
			v := SeatView{Name: s.Name, IsDealer: s.IsDealer, Chips: s.Chips}
			if b, ok := c.rl.BetOf(s.ID); ok {
				v.Status = fmt.Sprintf("%s %s", money(b.Amount), b.Color)
			}
			views = append(views, v)
		}
	case c.pl != nil:
		id, stake := c.pl.Stake()
		for _, s := range c.pl.Players() {
			v := SeatView{Name: s.Name, IsDealer: s.IsDealer, Chips: s.Chips}
			if s.ID == id {
				v.Active, v.Status = true, money(stake)
			}
			views = append(views, v)
		}
	}
	for i := range views {
		if m, ok := c.roster.ByName(views[i].Name); ok {
			views[i].Net = c.ledger.NetBalance(m.ID)
		}
	}
	return views
}

func betSummary(bets map[baccarat.BetType]float64) string {
	var parts []string
	for _, b := range baccarat.BetTypes {
		if v := bets[b]; v > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", money(v), b))
		}
	}
	return strings.Join(parts, ", ")
}

// Prompt describes what the table is waiting for.
func (c *Console) Prompt() string {
	switch {
	case c.bj != nil:
		return c.blackjackPrompt()
	case c.bac != nil:
		if c.bac.Phase() == baccarat.PhaseBetting {
			return "Baccarat: bet <name> player|banker|tie <amount>, then deal"
		}
		return "Baccarat: next to start a new coup"
	case c.rl != nil:
		switch c.rl.Phase() {
		case roulette.PhaseBetting:
			return "Roulette: bet <name> red|black <amount>, then spin"
		default:
			return "Roulette: next to start a new round"
		}
	case c.pl != nil:
		switch c.pl.Phase() {
		case pulse.PhaseResult:
			return "Pulse: next to start a new round"
		default:
			return "Pulse: bet <name> <amount>, then play"
		}
	}
	return ""
}
