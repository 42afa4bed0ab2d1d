package domain

import "github.com/shopspring/decimal"

// Performer identifies the holding with the best or worst unrealized return.
type Performer struct {
	Symbol     string          `json:"symbol"`
	PnLPercent decimal.Decimal `json:"pnlPercent"`
}

// PortfolioSummary is the derived net-worth snapshot. It is recomputed on
// every fetch and never persisted; only its TotalValue survives as a history
// snapshot. Cash balances contribute to TotalValue but not to the P&L
// figures: cash carries no acquisition cost in this model.
type PortfolioSummary struct {
	TotalValue      decimal.Decimal `json:"totalValue"`
	TotalPnL        decimal.Decimal `json:"totalPnL"`
	TotalPnLPercent decimal.Decimal `json:"totalPnLPercent"`
	BestPerformer   *Performer      `json:"bestPerformer,omitempty"`
	WorstPerformer  *Performer      `json:"worstPerformer,omitempty"`
}

// Allocation is one row of the net-worth breakdown: a category or account
// type, its absolute value in IDR, its share of the total and a display
// color. Derived, never persisted.
type Allocation struct {
	Label      string          `json:"label"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"`
	Color      string          `json:"color"`
}
