package ledger

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger(t *testing.T, store kvstore.Store) *Ledger {
	t.Helper()
	return New(context.Background(), store, log.New(io.Discard))
}

func TestRecordTransferNetsReverseDebt(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	l.RecordTransfer("A", "B", 10)
	l.RecordTransfer("B", "A", 4)

	assert.Equal(t, []Debt{{Debtor: "A", Creditor: "B", Amount: 6}}, l.Debts())
	assert.InDelta(t, -6, l.NetBalance("A"), 1e-9)
	assert.InDelta(t, 6, l.NetBalance("B"), 1e-9)
}

func TestRecordTransferCancelsExactly(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	l.RecordTransfer("A", "B", 5)
	l.RecordTransfer("B", "A", 5)

	assert.Empty(t, l.Debts())
	assert.Zero(t, l.NetBalance("A"))
	assert.Zero(t, l.NetBalance("B"))
}

func TestRecordTransferFlipsDirection(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	l.RecordTransfer("A", "B", 3)
	l.RecordTransfer("B", "A", 5)

	assert.Equal(t, []Debt{{Debtor: "B", Creditor: "A", Amount: 2}}, l.Debts())
}

func TestRecordTransferIgnoresInvalid(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	l.RecordTransfer("A", "A", 10)
	l.RecordTransfer("A", "B", 0)
	l.RecordTransfer("A", "B", -3)

	assert.Empty(t, l.Debts())
}

func TestDebtsHidesDustAndRounds(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	l.RecordTransfer("A", "B", 0.005)
	l.RecordTransfer("C", "D", 1.0/3)

	assert.Equal(t, []Debt{{Debtor: "C", Creditor: "D", Amount: 0.33}}, l.Debts())
	assert.InDelta(t, -0.005, l.NetBalance("A"), 1e-9)
}

func TestNetBalancesSumToZero(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	l.RecordTransfer("A", "B", 10)
	l.RecordTransfer("B", "C", 7.5)
	l.RecordTransfer("C", "A", 2.25)
	l.RecordTransfer("B", "A", 1)

	var sum float64
	for _, id := range []string{"A", "B", "C"} {
		sum += l.NetBalance(id)
	}
	assert.InDelta(t, 0, sum, 1e-9)
}

func TestPersistsAndReloads(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	l := newLedger(t, store)

	l.RecordTransfer("A", "B", 10)
	l.RecordTransfer("C", "B", 2.5)

	raw, err := store.Get(context.Background(), DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[["A",[["B",10]]],["C",[["B",2.5]]]]`, string(raw))

	reloaded := newLedger(t, store)
	assert.Equal(t, l.Debts(), reloaded.Debts())
	assert.Zero(t, reloaded.PersistErrors())
}

func TestPersistsOnNettingPath(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	l := newLedger(t, store)

	l.RecordTransfer("A", "B", 10)
	l.RecordTransfer("B", "A", 4)

	reloaded := newLedger(t, store)
	assert.Equal(t, []Debt{{Debtor: "A", Creditor: "B", Amount: 6}}, reloaded.Debts())
}

func TestLoadNetsOpposingEdges(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), DefaultKey,
		[]byte(`[["A",[["B",10],["C",3]]],["B",[["A",4]]],["C",[["A",3]]]]`)))

	l := newLedger(t, store)
	assert.Equal(t, []Debt{{Debtor: "A", Creditor: "B", Amount: 6}}, l.Debts())
	assert.InDelta(t, -6, l.NetBalance("A"), 0.001)
	assert.InDelta(t, 6, l.NetBalance("B"), 0.001)
	assert.Zero(t, l.NetBalance("C"))
	assert.Zero(t, l.PersistErrors())
}

func TestResetClearsAndPersists(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	l := newLedger(t, store)
	l.RecordTransfer("A", "B", 10)

	l.Reset()
	assert.Empty(t, l.Debts())
	assert.Empty(t, newLedger(t, store).Debts())
}

func TestWithKey(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	l := New(context.Background(), store, nil, WithKey("custom"))
	l.RecordTransfer("A", "B", 1)

	_, err := store.Get(context.Background(), "custom")
	require.NoError(t, err)
	_, err = store.Get(context.Background(), DefaultKey)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestCorruptDataFallsBackToEmpty(t *testing.T) {
	t.Parallel()
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(context.Background(), DefaultKey, []byte("{not json")))

	l := newLedger(t, store)
	assert.Empty(t, l.Debts())
	assert.Equal(t, 1, l.PersistErrors())

	l.RecordTransfer("A", "B", 1)
	assert.Len(t, l.Debts(), 1)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func (failingStore) Close() error { return nil }

func TestStoreFailuresAreCountedNotReturned(t *testing.T) {
	t.Parallel()
	l := newLedger(t, failingStore{})
	require.Equal(t, 1, l.PersistErrors())

	l.RecordTransfer("A", "B", 3)
	assert.Len(t, l.Debts(), 1)
	assert.Equal(t, 2, l.PersistErrors())
}

func TestConcurrentTransfers(t *testing.T) {
	t.Parallel()
	l := newLedger(t, kvstore.NewMemory())

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			l.RecordTransfer("A", "B", 1)
		}()
		go func() {
			defer wg.Done()
			l.RecordTransfer("B", "C", 1)
		}()
	}
	wg.Wait()

	assert.InDelta(t, -50, l.NetBalance("A"), 1e-9)
	assert.InDelta(t, 0, l.NetBalance("B"), 1e-9)
	assert.InDelta(t, 50, l.NetBalance("C"), 1e-9)
}
