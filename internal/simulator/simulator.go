// Package simulator plays headless blackjack rounds with a fixed strategy and
// reports per-seat statistics.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/blackjack"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/randutil"
	"github.com/lox/chipless/internal/score"
	"github.com/lox/chipless/internal/statistics"
	"golang.org/x/sync/errgroup"
)

const dealerID = "dealer"

// Config holds configuration for running simulations
type Config struct {
	Rounds int
	Seats  int
	Bet    float64
	Seed   int64
	Logger *log.Logger
}

func (c *Config) defaults() error {
	if c.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative: %d", c.Rounds)
	}
	if c.Seats <= 0 {
		c.Seats = 1
	}
	if c.Bet <= 0 {
		c.Bet = 10
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return nil
}

// Report is the outcome of a simulation.
type Report struct {
	Rounds    int
	Seats     []*statistics.Seat
	DealerNet float64 // In chips
}

// Run plays cfg.Rounds rounds on one shoe.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	logger := cfg.Logger.WithPrefix("simulator")

	l := ledger.New(ctx, kvstore.NewMemory(), cfg.Logger)
	shoe := deck.NewShoe(randutil.New(cfg.Seed))
	e := blackjack.New(shoe, l, blackjack.WithLogger(cfg.Logger))

	report := &Report{}
	ids := make([]string, cfg.Seats)
	for i := range ids {
		ids[i] = fmt.Sprintf("seat-%d", i+1)
		report.Seats = append(report.Seats, statistics.NewSeat(fmt.Sprintf("Seat %d", i+1)))
		if err := e.AddPlayer(ids[i], report.Seats[i].Name); err != nil {
			return nil, err
		}
	}
	if err := e.AddPlayer(dealerID, "Dealer"); err != nil {
		return nil, err
	}
	if err := e.SetDealer(dealerID); err != nil {
		return nil, err
	}
	if err := e.Start(); err != nil {
		return nil, err
	}

	seatIndex := make(map[string]int, len(ids))
	for i, id := range ids {
		seatIndex[id] = i
	}

	for round := 0; round < cfg.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := playRound(e, ids, cfg.Bet); err != nil {
			return nil, fmt.Errorf("round %d: %w", round+1, err)
		}
		for _, r := range e.Results() {
			p, _ := e.Player(r.PlayerID)
			hand := p.Hands()[r.HandIndex]
			report.Seats[seatIndex[r.PlayerID]].Add(statistics.HandResult{
				Net:     r.Net / cfg.Bet,
				Outcome: outcome(r.Outcome),
				Bust:    r.Value > score.Blackjack,
				Split:   p.IsSplit(),
				Doubled: hand.Bet > p.Bet,
			})
		}
		if err := e.ResetRound(); err != nil {
			return nil, err
		}
		report.Rounds++
	}

	report.DealerNet = l.NetBalance(dealerID)
	if err := checkZeroSum(e, l); err != nil {
		return nil, err
	}
	for _, s := range report.Seats {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("statistics validation failed for %s: %w", s.Name, err)
		}
	}
	logger.Info("Simulation finished", "rounds", report.Rounds, "seats", cfg.Seats, "dealer_net", report.DealerNet)
	return report, nil
}

// playRound bets, deals and plays one round with basic strategy.
func playRound(e *blackjack.Engine, ids []string, bet float64) error {
	for _, id := range ids {
		if err := e.PlaceBet(id, bet); err != nil {
			return err
		}
	}
	if _, err := e.Deal(); err != nil {
		return err
	}
	for e.Phase() == blackjack.PhaseInsurance {
		if err := e.Insure(false); err != nil {
			return err
		}
	}
	for e.Phase() == blackjack.PhasePlayerTurn {
		if err := act(e); err != nil {
			return err
		}
	}
	if e.Phase() == blackjack.PhaseDealerTurn {
		if _, err := e.PlayDealer(); err != nil {
			return err
		}
	}
	if e.Phase() != blackjack.PhaseResolution {
		return fmt.Errorf("round ended in %s", e.Phase())
	}
	return nil
}

// act makes one decision for the current player: always split aces and
// eights, double on a hard 10 or 11, hit below 17, otherwise stand.
func act(e *blackjack.Engine) error {
	p := e.Current()
	if p == nil {
		return errors.New("no player to act")
	}
	cards := p.Cards()
	total := score.Soft(cards)

	switch {
	case e.CanSplit() && (cards[0].Rank == deck.Ace || cards[0].Rank == deck.Eight):
		return e.Split()
	case e.CanDouble() && !total.Soft && (total.Value == 10 || total.Value == 11):
		_, err := e.Double()
		return err
	case total.Value < blackjack.DealerStandsOn:
		_, err := e.Hit()
		return err
	default:
		return e.Stand()
	}
}

func outcome(o blackjack.Outcome) statistics.Outcome {
	switch o {
	case blackjack.OutcomeWin:
		return statistics.Win
	case blackjack.OutcomeBlackjack:
		return statistics.Blackjack
	case blackjack.OutcomePush:
		return statistics.Push
	default:
		return statistics.Loss
	}
}

// checkZeroSum verifies that chips mirror the ledger and net to zero.
func checkZeroSum(e *blackjack.Engine, l *ledger.Ledger) error {
	var chips, net float64
	for _, p := range e.Players() {
		chips += p.Chips
		n := l.NetBalance(p.ID)
		net += n
		if math.Abs(p.Chips-n) > 0.01 {
			return fmt.Errorf("%s holds %.2f chips but the ledger nets %.2f", p.Name, p.Chips, n)
		}
	}
	if math.Abs(chips) > 0.01 || math.Abs(net) > 0.01 {
		return fmt.Errorf("zero-sum violated: chips=%.2f ledger=%.2f", chips, net)
	}
	return nil
}

// RunParallel splits cfg.Rounds across workers, each with its own shoe and
// ledger, and merges the results. A workers value of 0 uses the CPU count.
func RunParallel(ctx context.Context, cfg Config, workers int) (*Report, error) {
	if err := cfg.defaults(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = min(runtime.NumCPU(), 8)
	}
	workers = max(min(workers, cfg.Rounds), 1)

	perWorker := cfg.Rounds / workers
	remainder := cfg.Rounds % workers

	g, ctx := errgroup.WithContext(ctx)
	reports := make([]*Report, workers)
	for w := range workers {
		wcfg := cfg
		wcfg.Rounds = perWorker
		if w < remainder {
			wcfg.Rounds++
		}
		wcfg.Seed = cfg.Seed + int64(w)*7919
		g.Go(func() error {
			r, err := Run(ctx, wcfg)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			reports[w] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Report{}
	for i := range cfg.Seats {
		merged.Seats = append(merged.Seats, statistics.NewSeat(fmt.Sprintf("Seat %d", i+1)))
	}
	for _, r := range reports {
		merged.Rounds += r.Rounds
		merged.DealerNet += r.DealerNet
		for i, s := range r.Seats {
			merged.Seats[i].Merge(s)
		}
	}
	return merged, nil
}

// WriteSummary prints a per-seat summary of a report.
func WriteSummary(w io.Writer, r *Report, bet float64) {
	fmt.Fprintf(w, "\n=== SIMULATION: %d rounds, %d seats ===\n", r.Rounds, len(r.Seats))
	for _, s := range r.Seats {
		low, high := s.ConfidenceInterval95()
		fmt.Fprintf(w, "\n%s: %d hands\n", s.Name, s.Hands)
		fmt.Fprintf(w, "  Mean: %.4f bets/hand (95%% CI [%.4f, %.4f])\n", s.Mean(), low, high)
		fmt.Fprintf(w, "  Std Dev: %.4f  Std Error: %.4f  Median: %.2f\n", s.StdDev(), s.StdError(), s.Median())
		fmt.Fprintf(w, "  Percentiles: P5=%.2f, P25=%.2f, P75=%.2f, P95=%.2f\n",
			s.Percentile(0.05), s.Percentile(0.25), s.Percentile(0.75), s.Percentile(0.95))
		fmt.Fprintf(w, "  Wins %d, blackjacks %d, pushes %d, losses %d (busts %d)\n",
			s.Wins, s.Blackjacks, s.Pushes, s.Losses, s.Busts)
		fmt.Fprintf(w, "  Splits %d, doubles %d, win rate %.1f%%\n", s.Splits, s.Doubles, s.WinRate()*100)
	}
	fmt.Fprintf(w, "\nDealer net: %.2f chips (%.4f bets/round)\n", r.DealerNet, r.DealerNet/bet/float64(max(r.Rounds, 1)))
}
