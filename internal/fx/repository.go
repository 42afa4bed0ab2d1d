package fx

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNoRate indicates that no exchange rate has been stored yet.
var ErrNoRate = errors.New("no stored exchange rate")

// StoredRate is a persisted USD→IDR rate with its fetch timestamp. The
// timestamp drives the once-per-calendar-day invalidation rule.
type StoredRate struct {
	Rate      decimal.Decimal `json:"rate"`
	FetchedAt time.Time       `json:"fetchedAt"`
}

// RateRepository defines persistent storage for the exchange-rate cache.
type RateRepository interface {
	SaveRate(ctx context.Context, rate decimal.Decimal, fetchedAt time.Time) error
	LatestRate(ctx context.Context) (StoredRate, error)
}

// PgRateRepository implements RateRepository with PostgreSQL.
type PgRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgRateRepository creates a new PostgreSQL rate repository.
func NewPgRateRepository(pool *pgxpool.Pool) *PgRateRepository {
	return &PgRateRepository{pool: pool}
}

func (r *PgRateRepository) SaveRate(ctx context.Context, rate decimal.Decimal, fetchedAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO fx_rates (rate, fetched_at) VALUES ($1, $2)`,
		rate, fetchedAt)
	if err != nil {
		return fmt.Errorf("saving exchange rate: %w", err)
	}
	return nil
}

func (r *PgRateRepository) LatestRate(ctx context.Context) (StoredRate, error) {
	var s StoredRate
	err := r.pool.QueryRow(ctx,
		`SELECT rate, fetched_at FROM fx_rates ORDER BY fetched_at DESC LIMIT 1`).
		Scan(&s.Rate, &s.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return StoredRate{}, ErrNoRate
		}
		return StoredRate{}, fmt.Errorf("getting latest exchange rate: %w", err)
	}
	return s, nil
}

// MemoryRateRepository implements RateRepository in memory. Used by tests
// and by the mock data source.
type MemoryRateRepository struct {
	mu    sync.RWMutex
	rates []StoredRate
}

// NewMemoryRateRepository creates an empty in-memory rate repository.
func NewMemoryRateRepository() *MemoryRateRepository {
	return &MemoryRateRepository{}
}

func (r *MemoryRateRepository) SaveRate(_ context.Context, rate decimal.Decimal, fetchedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rates = append(r.rates, StoredRate{Rate: rate, FetchedAt: fetchedAt})
	return nil
}

func (r *MemoryRateRepository) LatestRate(_ context.Context) (StoredRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.rates) == 0 {
		return StoredRate{}, ErrNoRate
	}
	latest := r.rates[0]
	for _, s := range r.rates[1:] {
		if s.FetchedAt.After(latest.FetchedAt) {
			latest = s
		}
	}
	return latest, nil
}
