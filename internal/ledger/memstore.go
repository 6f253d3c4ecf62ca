package ledger

import (
	"context"
	"sync"

	"contas/internal/core"
)

// MemStore is an in-memory Store implementation, used by the "memory"
// backend and by tests. Nothing survives a restart.
type MemStore struct {
	mu      sync.Mutex
	txs     []core.Transaction
	present bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(_ context.Context) ([]core.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.present {
		return nil, false, nil
	}
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, true, nil
}

func (s *MemStore) Save(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = make([]core.Transaction, len(txs))
	copy(s.txs, txs)
	s.present = true
	return nil
}

func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = nil
	s.present = false
	return nil
}
