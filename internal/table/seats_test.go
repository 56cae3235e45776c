package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedTransfer struct {
	from, to string
	amount   float64
}

type recorder struct{ transfers []recordedTransfer }

func (r *recorder) RecordTransfer(from, to string, amount float64) {
	r.transfers = append(r.transfers, recordedTransfer{from, to, amount})
}

func TestSeats(t *testing.T) {
	t.Parallel()
	var s Seats
	require.NoError(t, s.Add("a", "Ana"))
	require.NoError(t, s.Add("b", "Ben"))
	assert.ErrorIs(t, s.Add("a", "Ana"), ErrDuplicatePlayer)
	assert.ErrorIs(t, s.Add("", "x"), ErrInvalidPlayer)
	assert.Nil(t, s.Dealer())

	require.NoError(t, s.SetDealer("a"))
	require.NoError(t, s.SetDealer("b"))
	assert.Equal(t, "b", s.Dealer().ID)
	a, _ := s.Get("a")
	assert.False(t, a.IsDealer)

	_, err := s.Bettor("b", 5)
	assert.ErrorIs(t, err, ErrDealerCannotBet)
	_, err = s.Bettor("a", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = s.Bettor("zed", 5)
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	seat, err := s.Bettor("a", -1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", seat.Name)
}

func TestSettle(t *testing.T) {
	t.Parallel()
	dealer := &Seat{ID: "d"}
	bettor := &Seat{ID: "p"}
	r := &recorder{}

	Settle(r, dealer, bettor, 9.5)
	Settle(r, dealer, bettor, -4)
	Settle(r, dealer, bettor, 0)

	assert.Equal(t, []recordedTransfer{{"d", "p", 9.5}, {"p", "d", 4}}, r.transfers)
	assert.Equal(t, 5.5, bettor.Chips)
	assert.Equal(t, -5.5, dealer.Chips)
}
