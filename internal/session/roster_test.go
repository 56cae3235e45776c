package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lox/chipless/internal/blackjack"
	"github.com/lox/chipless/internal/deck"
	"github.com/lox/chipless/internal/kvstore"
	"github.com/lox/chipless/internal/ledger"
	"github.com/lox/chipless/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterAdd(t *testing.T) {
	t.Parallel()
	var r Roster

	ana, err := r.Add("  Ana ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Name)
	_, err = uuid.Parse(ana.ID)
	assert.NoError(t, err)

	_, err = r.Add("ana")
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = r.Add(" ")
	assert.ErrorIs(t, err, ErrEmptyName)

	found, ok := r.ByName("ANA")
	require.True(t, ok)
	assert.Equal(t, ana, found)
}

func TestMemberIDIsStable(t *testing.T) {
	t.Parallel()
	var a, b Roster
	ana1, err := a.Add("Ana")
	require.NoError(t, err)
	ana2, err := b.Add(" ANA")
	require.NoError(t, err)
	ben, err := b.Add("Ben")
	require.NoError(t, err)

	assert.Equal(t, ana1.ID, ana2.ID)
	assert.Equal(t, MemberID("ana"), ana1.ID)
	assert.NotEqual(t, ana1.ID, ben.ID)

	id, err := uuid.Parse(ana1.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())
}

func TestRosterReady(t *testing.T) {
	t.Parallel()
	var r Roster
	ana, _ := r.Add("Ana")
	assert.ErrorIs(t, r.Ready(), ErrNeedTwoPlayers)

	_, _ = r.Add("Ben")
	assert.ErrorIs(t, r.Ready(), ErrNoDealer)
	assert.ErrorIs(t, r.SetDealer("nope"), ErrUnknownMember)

	require.NoError(t, r.SetDealer(ana.ID))
	assert.NoError(t, r.Ready())
	d, ok := r.Dealer()
	require.True(t, ok)
	assert.Equal(t, "Ana", d.Name)
}

func TestNewRoster(t *testing.T) {
	t.Parallel()
	r, err := NewRoster([]string{"Ana", "Ben", "Cy"}, "cy")
	require.NoError(t, err)
	assert.Len(t, r.Members(), 3)
	d, _ := r.Dealer()
	assert.Equal(t, "Cy", d.Name)

	_, err = NewRoster([]string{"Ana", "Ben"}, "Zed")
	assert.ErrorIs(t, err, ErrUnknownMember)
	_, err = NewRoster([]string{"Ana", "ana"}, "")
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestGameConstructors(t *testing.T) {
	t.Parallel()
	r, err := NewRoster([]string{"Ana", "Ben", "Cy"}, "Cy")
	require.NoError(t, err)
	l := ledger.New(context.Background(), kvstore.NewMemory(), nil)

	bj, err := NewBlackjack(r, l, deck.NewShoe(randutil.New(1)), nil)
	require.NoError(t, err)
	assert.Equal(t, blackjack.PhaseBetting, bj.Phase())
	assert.Equal(t, "Cy", bj.Dealer().Name)
	assert.Len(t, bj.Players(), 3)

	bac, err := NewBaccarat(r, l, deck.NewShoe(randutil.New(1)), nil)
	require.NoError(t, err)
	assert.Equal(t, "Cy", bac.Dealer().Name)

	rl, err := NewRoulette(r, l, randutil.CryptoCoin{}, nil)
	require.NoError(t, err)
	assert.Len(t, rl.Players(), 3)

	pl, err := NewPulse(r, l, randutil.CryptoCoin{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Cy", pl.Dealer().Name)
}

func TestGameConstructorsNeedReadyRoster(t *testing.T) {
	t.Parallel()
	r, err := NewRoster([]string{"Ana", "Ben"}, "")
	require.NoError(t, err)
	l := ledger.New(context.Background(), kvstore.NewMemory(), nil)

	_, err = NewBlackjack(r, l, deck.NewShoe(randutil.New(1)), nil)
	assert.ErrorIs(t, err, ErrNoDealer)
}
