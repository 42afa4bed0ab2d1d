package fx

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

// DefaultRate is the USD→IDR fallback used until a rate has been fetched
// successfully at least once.
var DefaultRate = decimal.NewFromInt(16000)

// RateFetcher fetches the current USD→IDR rate from a remote provider.
type RateFetcher interface {
	FetchRate(ctx context.Context) (decimal.Decimal, error)
}

// Service maintains the cached USD→IDR exchange rate and converts monetary
// amounts to IDR. The rate is refreshed at most once per calendar day:
// a stored rate fetched on the current day short-circuits the network call.
// Refresh failures are absorbed, keeping the previous rate, so conversions
// always succeed.
type Service struct {
	fetcher RateFetcher
	repo    RateRepository
	loc     *time.Location
	now     func() time.Time

	mu   sync.RWMutex
	rate decimal.Decimal
}

// NewService creates the converter seeded with defaultRate. Rates are dated
// in loc, which decides where the calendar-day boundary falls.
func NewService(fetcher RateFetcher, repo RateRepository, defaultRate decimal.Decimal, loc *time.Location) *Service {
	if defaultRate.IsZero() {
		defaultRate = DefaultRate
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		fetcher: fetcher,
		repo:    repo,
		loc:     loc,
		now:     time.Now,
		rate:    defaultRate,
	}
}

// Refresh updates the cached rate. If the stored rate was fetched today no
// network call is made. On any failure the previous rate is retained;
// refresh errors never reach aggregation callers.
func (s *Service) Refresh(ctx context.Context) {
	stored, err := s.repo.LatestRate(ctx)
	if err == nil && s.sameDay(stored.FetchedAt, s.now()) {
		s.setRate(stored.Rate)
		slog.Debug("using cached exchange rate", "rate", stored.Rate, "fetchedAt", stored.FetchedAt)
		return
	}
	if err != nil && !errors.Is(err, ErrNoRate) {
		slog.Warn("reading stored exchange rate failed", "error", err)
	}

	if s.fetcher == nil {
		slog.Debug("no exchange rate provider configured, keeping current rate", "rate", s.Rate())
		return
	}

	rate, err := s.fetcher.FetchRate(ctx)
	if err != nil {
		slog.Warn("exchange rate fetch failed, keeping previous rate", "rate", s.Rate(), "error", err)
		return
	}

	s.setRate(rate)
	if err := s.repo.SaveRate(ctx, rate, s.now()); err != nil {
		slog.Warn("storing exchange rate failed", "error", err)
	}
	slog.Info("exchange rate refreshed", "rate", rate)
}

// Rate returns the current cached USD→IDR rate.
func (s *Service) Rate() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rate
}

// ToIDR converts a monetary amount to IDR. IDR amounts pass through
// unchanged; USD amounts are multiplied by the cached rate.
func (s *Service) ToIDR(value decimal.Decimal, currency domain.Currency) decimal.Decimal {
	if currency == domain.USD {
		return value.Mul(s.Rate())
	}
	return value
}

func (s *Service) setRate(rate decimal.Decimal) {
	s.mu.Lock()
	s.rate = rate
	s.mu.Unlock()
}

func (s *Service) sameDay(a, b time.Time) bool {
	ay, am, ad := a.In(s.loc).Date()
	by, bm, bd := b.In(s.loc).Date()
	return ay == by && am == bm && ad == bd
}
