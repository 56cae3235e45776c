package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeat_Empty(t *testing.T) {
	t.Parallel()
	s := NewSeat("Ana")

	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdDev())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.5))
	assert.Zero(t, s.WinRate())
	assert.NoError(t, s.Validate())
}

func TestSeat_Add(t *testing.T) {
	t.Parallel()
	s := NewSeat("Ana")
	for _, r := range []HandResult{
		{Net: 1, Outcome: Win},
		{Net: -2, Outcome: Loss, Doubled: true},
		{Net: 1.5, Outcome: Blackjack},
		{Net: 0, Outcome: Push, Split: true},
		{Net: -1, Outcome: Loss, Bust: true, Split: true},
	} {
		s.Add(r)
	}

	assert.Equal(t, 5, s.Hands)
	assert.InDelta(t, -0.5/5, s.Mean(), 1e-9)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, 1, s.Blackjacks)
	assert.Equal(t, 1, s.Busts)
	assert.Equal(t, 2, s.Splits)
	assert.Equal(t, 1, s.Doubles)
	assert.InDelta(t, 0.4, s.WinRate(), 1e-9)

	// Sorted: -2, -1, 0, 1, 1.5
	assert.Equal(t, 0.0, s.Median())
	assert.Equal(t, -2.0, s.Percentile(0))
	assert.Equal(t, 1.5, s.Percentile(1))
	assert.InDelta(t, -1.0, s.Percentile(0.25), 1e-9)
	require.NoError(t, s.Validate())
}

func TestSeat_Variance(t *testing.T) {
	t.Parallel()
	s := NewSeat("Ben")
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		outcome := Win
		if v < 5 {
			outcome = Loss
		}
		s.Add(HandResult{Net: v, Outcome: outcome})
	}

	// Sample variance of the classic set is 32/7.
	assert.InDelta(t, 32.0/7.0, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.StdDev(), 1e-9)
	assert.InDelta(t, s.StdDev()/math.Sqrt(8), s.StdError(), 1e-9)

	low, high := s.ConfidenceInterval95()
	assert.InDelta(t, s.Mean()-1.96*s.StdError(), low, 1e-9)
	assert.InDelta(t, s.Mean()+1.96*s.StdError(), high, 1e-9)
}

func TestSeat_Merge(t *testing.T) {
	t.Parallel()
	a, b := NewSeat("Ana"), NewSeat("Ana")
	a.Add(HandResult{Net: 1, Outcome: Win})
	b.Add(HandResult{Net: -1, Outcome: Loss, Bust: true})
	b.Add(HandResult{Net: 1.5, Outcome: Blackjack})

	a.Merge(b)
	assert.Equal(t, 3, a.Hands)
	assert.InDelta(t, 1.5, a.Sum, 1e-9)
	assert.Len(t, a.Values, 3)
	assert.Equal(t, 1, a.Busts)
	require.NoError(t, a.Validate())
}

func TestSeat_Validate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(s *Seat)
		wantErr string
	}{
		{"values mismatch", func(s *Seat) { s.Values = s.Values[:1] }, "values array length"},
		{"outcome mismatch", func(s *Seat) { s.Wins++ }, "outcome total"},
		{"busts exceed losses", func(s *Seat) { s.Busts = 5 }, "busts"},
		{"sum mismatch", func(s *Seat) { s.Sum += 3 }, "sum mismatch"},
		{"negative hands", func(s *Seat) { s.Hands = -1 }, "invalid hands count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := NewSeat("Cy")
			s.Add(HandResult{Net: 1, Outcome: Win})
			s.Add(HandResult{Net: -1, Outcome: Loss, Bust: true})
			tt.mutate(s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
