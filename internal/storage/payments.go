package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/example/ride-booking/internal/models"
)

// MethodStore holds payment methods and maintains the exactly-one-default
// invariant under a single lock: adding to an empty store makes the new
// method the default, removing the default promotes the first survivor.
type MethodStore struct {
	mu      sync.RWMutex
	methods []models.PaymentMethod
}

func NewMethodStore(methods []models.PaymentMethod) *MethodStore {
	return &MethodStore{methods: append([]models.PaymentMethod(nil), methods...)}
}

func (s *MethodStore) List() []models.PaymentMethod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.PaymentMethod, len(s.methods))
	copy(out, s.methods)
	return out
}

func (s *MethodStore) Get(id int) (models.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.methods {
		if m.ID == id {
			return m, nil
		}
	}
	return models.PaymentMethod{}, ErrNotFound
}

func (s *MethodStore) Add(m models.PaymentMethod) models.PaymentMethod {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := 0
	for _, e := range s.methods {
		if e.ID > id {
			id = e.ID
		}
	}
	m.ID = id + 1
	m.IsDefault = len(s.methods) == 0
	s.methods = append(s.methods, m)
	return m
}

func (s *MethodStore) Remove(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, m := range s.methods {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	wasDefault := s.methods[idx].IsDefault
	s.methods = append(s.methods[:idx], s.methods[idx+1:]...)
	if wasDefault && len(s.methods) > 0 {
		s.methods[0].IsDefault = true
	}
	return nil
}

func (s *MethodStore) SetDefault(id int) (models.PaymentMethod, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, m := range s.methods {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.PaymentMethod{}, ErrNotFound
	}
	for i := range s.methods {
		s.methods[i].IsDefault = false
	}
	s.methods[idx].IsDefault = true
	return s.methods[idx], nil
}

// Ledger is the append-only transaction log. Refunds are new entries
// referencing an original by description text, never in-place edits.
type Ledger interface {
	// Append assigns the next id and stores the transaction.
	Append(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	Get(ctx context.Context, id int) (models.Transaction, error)
	// ListDescending returns all transactions, newest first.
	ListDescending(ctx context.Context) ([]models.Transaction, error)
}

type MemoryLedger struct {
	mu  sync.RWMutex
	txs []models.Transaction
}

func NewMemoryLedger(txs []models.Transaction) *MemoryLedger {
	return &MemoryLedger{txs: append([]models.Transaction(nil), txs...)}
}

func (l *MemoryLedger) Append(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	_ = ctx
	l.mu.Lock()
	defer l.mu.Unlock()
	id := 0
	for _, t := range l.txs {
		if t.ID > id {
			id = t.ID
		}
	}
	tx.ID = id + 1
	l.txs = append(l.txs, tx)
	return tx, nil
}

func (l *MemoryLedger) Get(ctx context.Context, id int) (models.Transaction, error) {
	_ = ctx
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, t := range l.txs {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Transaction{}, ErrNotFound
}

func (l *MemoryLedger) ListDescending(ctx context.Context) ([]models.Transaction, error) {
	_ = ctx
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.Transaction, len(l.txs))
	copy(out, l.txs)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}
