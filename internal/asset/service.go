package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

// DeleteReason states why an asset is being removed. Withdrawals leave the
// history untouched; loss-motivated deletions record the drop in net worth.
type DeleteReason string

const (
	ReasonWithdraw DeleteReason = "withdraw"
	ReasonLoss     DeleteReason = "loss"
)

// Summarizer recomputes the portfolio summary. Satisfied by the portfolio
// aggregation service.
type Summarizer interface {
	Summary(ctx context.Context) (domain.PortfolioSummary, error)
}

// Service implements the asset use cases. Mutations that change total
// portfolio value append a net-worth snapshot to the history ledger. The
// mutate-then-snapshot pair is not transactional: when the snapshot append
// fails the mutation stands and the error is returned, leaving the history
// one point behind until the next value-changing operation.
type Service struct {
	repo       Repository
	summarizer Summarizer
	loc        *time.Location
	now        func() time.Time
}

// NewService creates the asset service. Snapshots are stamped in loc.
func NewService(repo Repository, summarizer Summarizer, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, summarizer: summarizer, loc: loc, now: time.Now}
}

// List returns all tracked assets.
func (s *Service) List(ctx context.Context) ([]domain.Asset, error) {
	return s.repo.GetAssets(ctx)
}

// Add stores a new asset and snapshots the recomputed total value.
func (s *Service) Add(ctx context.Context, a domain.Asset) (domain.Asset, error) {
	if a.Currency == "" {
		a.Currency = a.Category.DefaultCurrency()
	}
	if err := a.Validate(); err != nil {
		return domain.Asset{}, err
	}

	added, err := s.repo.AddAsset(ctx, a)
	if err != nil {
		return domain.Asset{}, err
	}
	if err := s.snapshot(ctx); err != nil {
		return added, err
	}
	return added, nil
}

// Update replaces an asset in full and snapshots the recomputed total value.
func (s *Service) Update(ctx context.Context, a domain.Asset) error {
	if a.ID == "" {
		return fmt.Errorf("%w: asset id is required", domain.ErrValidation)
	}
	if err := a.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpdateAsset(ctx, a); err != nil {
		return err
	}
	return s.snapshot(ctx)
}

// Delete removes an asset. A loss-motivated deletion appends exactly one
// snapshot of the recomputed total value; a withdrawal appends none.
func (s *Service) Delete(ctx context.Context, id string, reason DeleteReason) error {
	if reason != ReasonWithdraw && reason != ReasonLoss {
		return fmt.Errorf("%w: unknown delete reason %q", domain.ErrValidation, reason)
	}

	if err := s.repo.DeleteAsset(ctx, id); err != nil {
		return err
	}
	if reason == ReasonLoss {
		return s.snapshot(ctx)
	}
	return nil
}

// History returns the portfolio timeline filtered by the range descriptor.
func (s *Service) History(ctx context.Context, rangeDesc string) ([]domain.HistoryItem, error) {
	return s.repo.GetHistory(ctx, rangeDesc)
}

// AddTransaction appends a manual Income/Outcome entry to the portfolio
// ledger.
func (s *Service) AddTransaction(ctx context.Context, typ domain.HistoryType, amount decimal.Decimal, notes, assetID string) (domain.HistoryItem, error) {
	if typ != domain.HistoryIncome && typ != domain.HistoryOutcome {
		return domain.HistoryItem{}, fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, typ)
	}
	if amount.IsNegative() {
		return domain.HistoryItem{}, fmt.Errorf("%w: transaction amount must be non-negative", domain.ErrValidation)
	}

	return s.repo.AddTransaction(ctx, domain.HistoryItem{
		Date:    s.now().In(s.loc),
		Type:    typ,
		Amount:  amount,
		Notes:   notes,
		AssetID: assetID,
	})
}

// UpdateTransaction rewrites a manual ledger entry.
func (s *Service) UpdateTransaction(ctx context.Context, id string, typ domain.HistoryType, amount decimal.Decimal, notes, assetID string) error {
	if typ != domain.HistoryIncome && typ != domain.HistoryOutcome {
		return fmt.Errorf("%w: unknown transaction type %q", domain.ErrValidation, typ)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: transaction amount must be non-negative", domain.ErrValidation)
	}

	return s.repo.UpdateTransaction(ctx, domain.HistoryItem{
		ID:      id,
		Type:    typ,
		Amount:  amount,
		Notes:   notes,
		AssetID: assetID,
	})
}

func (s *Service) snapshot(ctx context.Context) error {
	summary, err := s.summarizer.Summary(ctx)
	if err != nil {
		return fmt.Errorf("recomputing summary for snapshot: %w", err)
	}
	if err := s.repo.AddSnapshot(ctx, summary.TotalValue, s.now().In(s.loc)); err != nil {
		return fmt.Errorf("appending history snapshot: %w", err)
	}
	return nil
}
