package domain

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AccountType classifies a cash-holding account.
type AccountType string

const (
	AccountSavings AccountType = "Savings"
	AccountRDN     AccountType = "RDN"
)

// Valid reports whether the account type is known.
func (t AccountType) Valid() bool {
	return t == AccountSavings || t == AccountRDN
}

// AccountSource is a cash-holding account. Its balance is never stored; it is
// the sum of the account's transaction ledger.
type AccountSource struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     AccountType `json:"type"`
	Currency Currency    `json:"currency"`
}

// CashTransactionType tags a ledger entry as money in or money out.
type CashTransactionType string

const (
	CashIncome  CashTransactionType = "Income"
	CashOutcome CashTransactionType = "Outcome"
)

// Valid reports whether the transaction type is known.
func (t CashTransactionType) Valid() bool {
	return t == CashIncome || t == CashOutcome
}

// CashTransaction is an append-only ledger entry against a cash account.
type CashTransaction struct {
	ID        string              `json:"id"`
	SourceID  string              `json:"sourceId"`
	Date      time.Time           `json:"date"`
	Type      CashTransactionType `json:"type"`
	Amount    decimal.Decimal     `json:"amount"`
	Notes     string              `json:"notes,omitempty"`
	Performer string              `json:"performer,omitempty"`
}

// Validate checks the ledger-entry invariants.
func (t CashTransaction) Validate() error {
	if t.SourceID == "" {
		return fmt.Errorf("%w: cash transaction source is required", ErrValidation)
	}
	if !t.Type.Valid() {
		return fmt.Errorf("%w: unknown cash transaction type %q", ErrValidation, t.Type)
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("%w: cash transaction amount must be non-negative", ErrValidation)
	}
	return nil
}

// Signed returns the transaction amount with its ledger sign applied:
// Income positive, Outcome negative.
func (t CashTransaction) Signed() decimal.Decimal {
	if t.Type == CashOutcome {
		return t.Amount.Neg()
	}
	return t.Amount
}

// CashBalance sums the signed amounts of the given ledger entries.
func CashBalance(txs []CashTransaction) decimal.Decimal {
	return lo.Reduce(txs, func(acc decimal.Decimal, t CashTransaction, _ int) decimal.Decimal {
		return acc.Add(t.Signed())
	}, decimal.Zero)
}

// AccountBalance sums the signed amounts of entries belonging to one account.
func AccountBalance(txs []CashTransaction, sourceID string) decimal.Decimal {
	scoped := lo.Filter(txs, func(t CashTransaction, _ int) bool {
		return t.SourceID == sourceID
	})
	return CashBalance(scoped)
}
