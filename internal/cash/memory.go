package cash

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/arthadash/artha/internal/domain"
)

// MemoryRepository implements Repository in memory for tests and the mock
// data source.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts []domain.AccountSource
	txs      []domain.CashTransaction
}

// NewMemoryRepository creates an empty in-memory cash repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Seed replaces the stored accounts and transactions. Test helper.
func (r *MemoryRepository) Seed(accounts []domain.AccountSource, txs []domain.CashTransaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = accounts
	r.txs = txs
}

func (r *MemoryRepository) GetAccounts(_ context.Context) ([]domain.AccountSource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AccountSource, len(r.accounts))
	copy(out, r.accounts)
	return out, nil
}

func (r *MemoryRepository) AddAccount(_ context.Context, a domain.AccountSource) (domain.AccountSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	r.accounts = append(r.accounts, a)
	return a, nil
}

func (r *MemoryRepository) DeleteAccount(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.accounts {
		if r.accounts[i].ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) GetTransactions(_ context.Context, sourceID string) ([]domain.CashTransaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.CashTransaction
	for _, t := range r.txs {
		if sourceID == "" || t.SourceID == sourceID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *MemoryRepository) AddTransaction(_ context.Context, t domain.CashTransaction) (domain.CashTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.NewString()
	r.txs = append(r.txs, t)
	return t, nil
}

func (r *MemoryRepository) UpdateTransaction(_ context.Context, t domain.CashTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txs {
		if r.txs[i].ID == t.ID {
			t.SourceID = r.txs[i].SourceID
			t.Date = r.txs[i].Date
			r.txs[i] = t
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) DeleteTransaction(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.txs {
		if r.txs[i].ID == id {
			r.txs = append(r.txs[:i], r.txs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
