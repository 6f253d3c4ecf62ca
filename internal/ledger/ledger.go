// Package ledger owns the canonical in-memory transaction list and the
// balances derived from it. Every mutation validates first, persists
// through the Store port, and only then adopts the new state, so the
// persisted record stays the sole source of truth across restarts.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"contas/internal/core"
)

// Store is the outbound persistence port. Load reports ok=false when no
// record exists yet (a fresh household), which is not an error.
type Store interface {
	Load(ctx context.Context) (txs []core.Transaction, ok bool, err error)
	Save(ctx context.Context, txs []core.Transaction) error
	Clear(ctx context.Context) error
}

// Snapshot is an immutable view of ledger state at a point in time.
// Callers own the returned slices and maps.
type Snapshot struct {
	Transactions []core.Transaction
	Balances     map[core.Person]core.PersonBalance
	Revision     uint64
}

// Ledger is the aggregate root. Balances are recomputed wholesale from
// the transaction list after every mutation, never patched
// incrementally, so they cannot drift.
type Ledger struct {
	mu           sync.Mutex
	store        Store
	transactions []core.Transaction // newest inserted first
	balances     map[core.Person]core.PersonBalance
	revision     uint64
}

func New(store Store) *Ledger {
	return &Ledger{
		store:    store,
		balances: core.ComputeBalances(nil),
	}
}

// Initialize loads the persisted record. Absent or undecodable records
// start the ledger empty.
func (l *Ledger) Initialize(ctx context.Context) error {
	txs, ok, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.transactions = txs
	l.balances = core.ComputeBalances(txs)

	if ok {
		slog.InfoContext(ctx, "Ledger loaded", "transactions", len(txs))
	} else {
		slog.InfoContext(ctx, "No ledger record found, starting empty")
	}
	return nil
}

// Add validates the draft, assigns id and creation timestamp, prepends
// the transaction and persists the full list. If the write fails the
// in-memory state is left unchanged and the error is returned, so
// memory never diverges from storage.
func (l *Ledger) Add(ctx context.Context, d core.Draft) (core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:          uuid.NewString(),
		Date:        d.Date,
		Kind:        d.Kind,
		Amount:      d.Amount,
		Person:      d.Person,
		Description: strings.TrimSpace(d.Description),
		CreatedAt:   time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]core.Transaction, 0, len(l.transactions)+1)
	next = append(next, tx)
	next = append(next, l.transactions...)

	if err := l.store.Save(ctx, next); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger, change rolled back",
			"transaction_id", tx.ID, "error", err)
		return core.Transaction{}, fmt.Errorf("persist ledger: %w", err)
	}

	l.adopt(next)
	slog.InfoContext(ctx, "Transaction added",
		"transaction_id", tx.ID,
		"person", tx.Person,
		"kind", tx.Kind,
		"amount", tx.Amount.String(),
		"date", tx.Date)
	return tx, nil
}

// Remove deletes the transaction with the given id. Removing an unknown
// id is a no-op, not an error, and does not touch storage.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]core.Transaction, 0, len(l.transactions))
	for _, t := range l.transactions {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(l.transactions) {
		slog.DebugContext(ctx, "Remove of unknown transaction ignored", "transaction_id", id)
		return nil
	}

	if err := l.store.Save(ctx, next); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger, change rolled back",
			"transaction_id", id, "error", err)
		return fmt.Errorf("persist ledger: %w", err)
	}

	l.adopt(next)
	slog.InfoContext(ctx, "Transaction removed", "transaction_id", id)
	return nil
}

// ClearAll empties the ledger and deletes the persisted record.
func (l *Ledger) ClearAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear ledger record: %w", err)
	}

	l.adopt(nil)
	slog.InfoContext(ctx, "Ledger cleared")
	return nil
}

// Snapshot returns a deep copy of the current state. Mutating the
// returned value has no effect on the ledger.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	txs := make([]core.Transaction, len(l.transactions))
	copy(txs, l.transactions)

	balances := make(map[core.Person]core.PersonBalance, len(l.balances))
	for p, b := range l.balances {
		balances[p] = b
	}

	return Snapshot{Transactions: txs, Balances: balances, Revision: l.revision}
}

// adopt commits an already-persisted transaction list. Caller holds mu.
func (l *Ledger) adopt(txs []core.Transaction) {
	l.transactions = txs
	l.balances = core.ComputeBalances(txs)
	l.revision++
}
