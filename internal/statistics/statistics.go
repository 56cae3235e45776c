// Package statistics accumulates per-seat blackjack results.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Outcome classifies a settled hand.
type Outcome int

const (
	Loss Outcome = iota
	Push
	Win
	Blackjack
)

// HandResult is one settled hand from a seat's point of view.
type HandResult struct {
	Net     float64 // Chips won or lost, in units of the base bet
	Outcome Outcome
	Bust    bool // Lost by going over 21
	Split   bool // Came from a split
	Doubled bool
}

// Seat tracks the results of one seat over many rounds.
type Seat struct {
	Name   string
	Hands  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // All values, for median/percentile calculation

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Busts      int
	Splits     int
	Doubles    int
}

// NewSeat returns empty statistics for name.
func NewSeat(name string) *Seat {
	return &Seat{Name: name}
}

// Add incorporates a hand result.
func (s *Seat) Add(r HandResult) {
	s.Hands++
	s.Sum += r.Net
	s.SumSq += r.Net * r.Net
	s.Values = append(s.Values, r.Net)

	switch r.Outcome {
	case Win:
		s.Wins++
	case Blackjack:
		s.Blackjacks++
	case Push:
		s.Pushes++
	default:
		s.Losses++
	}
	if r.Bust {
		s.Busts++
	}
	if r.Split {
		s.Splits++
	}
	if r.Doubled {
		s.Doubles++
	}
}

// Merge folds other into s.
func (s *Seat) Merge(other *Seat) {
	s.Hands += other.Hands
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.Busts += other.Busts
	s.Splits += other.Splits
	s.Doubles += other.Doubles
}

// Mean returns the average net per hand
func (s *Seat) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Seat) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Seat) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
}

// StdError returns the standard error of the mean
func (s *Seat) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Seat) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate is the share of hands won, naturals included.
func (s *Seat) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins+s.Blackjacks) / float64(s.Hands)
}

// Median returns the median value of all results
func (s *Seat) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Seat) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other.
func (s *Seat) Validate() error {
	if s.Hands < 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if n := s.Wins + s.Losses + s.Pushes + s.Blackjacks; n != s.Hands {
		return fmt.Errorf("outcome total (%d) does not match hands count (%d)", n, s.Hands)
	}
	if s.Busts > s.Losses {
		return fmt.Errorf("busts (%d) exceed losses (%d)", s.Busts, s.Losses)
	}
	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-6 {
		return fmt.Errorf("sum mismatch: values=%.6f, sum=%.6f", sum, s.Sum)
	}
	return nil
}
