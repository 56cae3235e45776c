// Package ledger keeps the running "who owes whom" graph shared by every game
// at the table. Opposing debts between two players always collapse into a
// single directed edge.
package ledger

import (
	"context"
	"errors"
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/chipless/internal/kvstore"
)

// DefaultKey is the storage key the debt graph persists under.
const DefaultKey = "blackjack_ledger_v2"

const (
	// epsilon below which an edge is treated as settled and removed.
	epsilon = 0.001
	// reportThreshold hides dust edges from Debts.
	reportThreshold = 0.01
)

// Debt is one directed edge of the graph: Debtor owes Creditor Amount.
type Debt struct {
	Debtor   string
	Creditor string
	Amount   float64
}

// Option customises a Ledger.
type Option func(*Ledger)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *Ledger) { l.key = key }
}

// WithTimeout bounds each store call.
func WithTimeout(d time.Duration) Option {
	return func(l *Ledger) { l.timeout = d }
}

// Ledger is safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	debts   map[string]map[string]float64
	store   kvstore.Store
	logger  *log.Logger
	key     string
	timeout time.Duration

	persistErrors int
}

// New returns a ledger loaded from store. Unreadable or corrupt data yields an
// empty ledger; the failure is logged and counted, never returned.
func New(ctx context.Context, store kvstore.Store, logger *log.Logger, opts ...Option) *Ledger {
	l := &Ledger{
		debts:   make(map[string]map[string]float64),
		store:   store,
		logger:  logger,
		key:     DefaultKey,
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	l.logger = l.logger.WithPrefix("ledger")
	l.load(ctx)
	return l
}

func (l *Ledger) load(ctx context.Context) {
	if l.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	data, err := l.store.Get(ctx, l.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return
	}
	if err != nil {
		l.persistErrors++
		l.logger.Warn("Failed to load ledger, starting empty", "key", l.key, "error", err)
		return
	}
	debts, err := decode(data)
	if err != nil {
		l.persistErrors++
		l.logger.Warn("Corrupt ledger data, starting empty", "key", l.key, "error", err)
		return
	}
	l.debts = debts
	l.logger.Debug("Loaded ledger", "key", l.key, "debtors", len(debts))
}

// save must be called with mu held.
func (l *Ledger) save() {
	if l.store == nil {
		return
	}
	data, err := encode(l.debts)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		err = l.store.Set(ctx, l.key, data)
		cancel()
	}
	if err != nil {
		l.persistErrors++
		l.logger.Warn("Failed to persist ledger", "key", l.key, "error", err)
	}
}

// RecordTransfer records that from owes to an additional amount. The amount
// first cancels any existing debt in the opposite direction. Non-positive
// amounts and self transfers are ignored.
func (l *Ledger) RecordTransfer(from, to string, amount float64) {
	if amount <= 0 || from == to || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	defer l.save()

	offset(l.debts, from, to, amount)
}

// offset adds a from->to debt, paying down any to->from debt first so a pair
// never holds edges in both directions.
func offset(debts map[string]map[string]float64, from, to string, amount float64) {
	if reverse := debts[to][from]; reverse > 0 {
		if reverse >= amount {
			setEdge(debts, to, from, reverse-amount)
			return
		}
		setEdge(debts, to, from, 0)
		amount -= reverse
	}
	setEdge(debts, from, to, debts[from][to]+amount)
}

func setEdge(debts map[string]map[string]float64, debtor, creditor string, amount float64) {
	if amount <= epsilon {
		if row, ok := debts[debtor]; ok {
			delete(row, creditor)
			if len(row) == 0 {
				delete(debts, debtor)
			}
		}
		return
	}
	row, ok := debts[debtor]
	if !ok {
		row = make(map[string]float64)
		debts[debtor] = row
	}
	row[creditor] = amount
}

// NetBalance is what id is owed minus what id owes.
func (l *Ledger) NetBalance(id string) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var net float64
	for debtor, row := range l.debts {
		for creditor, amount := range row {
			if creditor == id {
				net += amount
			}
			if debtor == id {
				net -= amount
			}
		}
	}
	return net
}

// Debts returns a snapshot of every edge above one cent, rounded to cents and
// sorted by debtor then creditor.
func (l *Ledger) Debts() []Debt {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Debt
	for debtor, row := range l.debts {
		for creditor, amount := range row {
			if amount <= reportThreshold {
				continue
			}
			out = append(out, Debt{Debtor: debtor, Creditor: creditor, Amount: roundCents(amount)})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Debtor != out[j].Debtor {
			return out[i].Debtor < out[j].Debtor
		}
		return out[i].Creditor < out[j].Creditor
	})
	return out
}

// Reset clears every debt.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debts = make(map[string]map[string]float64)
	l.save()
}

// PersistErrors counts load and save failures since construction.
func (l *Ledger) PersistErrors() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persistErrors
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
