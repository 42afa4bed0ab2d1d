package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryType tags a portfolio history entry. The history is a unified
// ledger: automatic net-worth snapshots and manual income/outcome entries
// share one timeline.
type HistoryType string

const (
	HistorySnapshot HistoryType = "Snapshot"
	HistoryIncome   HistoryType = "Income"
	HistoryOutcome  HistoryType = "Outcome"
)

// Valid reports whether the history type is known.
func (t HistoryType) Valid() bool {
	return t == HistorySnapshot || t == HistoryIncome || t == HistoryOutcome
}

// HistoryItem is one point on the portfolio timeline. Value is the total
// portfolio value at that moment; Amount is only set for manual entries.
// Items are appended, never mutated in place.
type HistoryItem struct {
	ID      string          `json:"id"`
	Date    time.Time       `json:"date"`
	Value   decimal.Decimal `json:"value"`
	Type    HistoryType     `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Notes   string          `json:"notes,omitempty"`
	AssetID string          `json:"assetId,omitempty"`
}
