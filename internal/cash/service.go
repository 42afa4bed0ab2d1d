package cash

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

// Service implements the cash-account use cases: account lifecycle and the
// append-only transaction ledger. An account's balance is always derived
// from its ledger, never stored.
type Service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

// NewService creates the cash service. Ledger entries are stamped in loc.
func NewService(repo Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, now: time.Now}
}

// Accounts returns all cash accounts.
func (s *Service) Accounts(ctx context.Context) ([]domain.AccountSource, error) {
	return s.repo.GetAccounts(ctx)
}

// AddAccount creates a cash account. New accounts are IDR; only balance
// movements change an account after creation.
func (s *Service) AddAccount(ctx context.Context, name string, typ domain.AccountType) (domain.AccountSource, error) {
	if name == "" {
		return domain.AccountSource{}, fmt.Errorf("%w: account name is required", domain.ErrValidation)
	}
	if !typ.Valid() {
		return domain.AccountSource{}, fmt.Errorf("%w: unknown account type %q", domain.ErrValidation, typ)
	}

	return s.repo.AddAccount(ctx, domain.AccountSource{
		Name:     name,
		Type:     typ,
		Currency: domain.IDR,
	})
}

// DeleteAccount removes a cash account.
func (s *Service) DeleteAccount(ctx context.Context, id string) error {
	return s.repo.DeleteAccount(ctx, id)
}

// Transactions returns ledger entries, newest first, optionally scoped to
// one account.
func (s *Service) Transactions(ctx context.Context, sourceID string) ([]domain.CashTransaction, error) {
	return s.repo.GetTransactions(ctx, sourceID)
}

// AddTransaction appends a ledger entry dated now.
func (s *Service) AddTransaction(ctx context.Context, sourceID string, typ domain.CashTransactionType, amount decimal.Decimal, notes, performer string) (domain.CashTransaction, error) {
	t := domain.CashTransaction{
		SourceID:  sourceID,
		Date:      s.now().In(s.loc),
		Type:      typ,
		Amount:    amount,
		Notes:     notes,
		Performer: performer,
	}
	if err := t.Validate(); err != nil {
		return domain.CashTransaction{}, err
	}
	return s.repo.AddTransaction(ctx, t)
}

// UpdateTransaction rewrites a ledger entry's type, amount, notes and
// performer. The owning account and date are immutable.
func (s *Service) UpdateTransaction(ctx context.Context, id string, typ domain.CashTransactionType, amount decimal.Decimal, notes, performer string) error {
	if !typ.Valid() {
		return fmt.Errorf("%w: unknown cash transaction type %q", domain.ErrValidation, typ)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: cash transaction amount must be non-negative", domain.ErrValidation)
	}
	return s.repo.UpdateTransaction(ctx, domain.CashTransaction{
		ID:        id,
		Type:      typ,
		Amount:    amount,
		Notes:     notes,
		Performer: performer,
	})
}

// DeleteTransaction removes a ledger entry.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// Balance returns the derived balance of one account.
func (s *Service) Balance(ctx context.Context, sourceID string) (decimal.Decimal, error) {
	txs, err := s.repo.GetTransactions(ctx, sourceID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.CashBalance(txs), nil
}
