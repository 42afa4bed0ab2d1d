package asset

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
	"github.com/arthadash/artha/internal/history"
)

// MemoryRepository implements Repository in memory. It backs tests and the
// mock data source; the history slice keeps insertion order, which is what
// the filtered timeline preserves.
type MemoryRepository struct {
	mu      sync.RWMutex
	assets  []domain.Asset
	history []domain.HistoryItem
	now     func() time.Time
}

// NewMemoryRepository creates an empty in-memory asset repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

// Seed replaces the stored assets. Test helper.
func (r *MemoryRepository) Seed(assets ...domain.Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = assets
}

// History returns a copy of the full stored timeline. Test helper.
func (r *MemoryRepository) History() []domain.HistoryItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.HistoryItem, len(r.history))
	copy(out, r.history)
	return out
}

func (r *MemoryRepository) GetAssets(_ context.Context) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Asset, len(r.assets))
	copy(out, r.assets)
	return out, nil
}

func (r *MemoryRepository) AddAsset(_ context.Context, a domain.Asset) (domain.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	r.assets = append(r.assets, a)
	return a, nil
}

func (r *MemoryRepository) UpdateAsset(_ context.Context, a domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.assets {
		if r.assets[i].ID == a.ID {
			r.assets[i] = a
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) DeleteAsset(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.assets {
		if r.assets[i].ID == id {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepository) GetHistory(_ context.Context, rangeDesc string) ([]domain.HistoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.HistoryItem, len(r.history))
	copy(all, r.history)
	ref := history.ReferenceDate(all, r.now())
	return history.Filter(all, history.Resolve(rangeDesc, ref)), nil
}

func (r *MemoryRepository) AddSnapshot(_ context.Context, value decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, domain.HistoryItem{
		ID:    uuid.NewString(),
		Date:  at,
		Value: value,
		Type:  domain.HistorySnapshot,
	})
	return nil
}

func (r *MemoryRepository) AddTransaction(_ context.Context, item domain.HistoryItem) (domain.HistoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = uuid.NewString()
	r.history = append(r.history, item)
	return item, nil
}

func (r *MemoryRepository) UpdateTransaction(_ context.Context, item domain.HistoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.history {
		if r.history[i].ID == item.ID {
			item.Date = r.history[i].Date
			r.history[i] = item
			return nil
		}
	}
	return ErrNotFound
}
