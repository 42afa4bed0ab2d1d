package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Asset is a tracked investment position. Quantity may be fractional
// (crypto); money fields are in the asset's native currency.
type Asset struct {
	ID           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Category     AssetCategory   `json:"category"`
	Quantity     decimal.Decimal `json:"quantity"`
	AvgPrice     decimal.Decimal `json:"avgPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Currency     Currency        `json:"currency"`
}

// Validate checks the asset invariants: known category and currency,
// non-negative quantity and prices.
func (a Asset) Validate() error {
	if a.Symbol == "" {
		return fmt.Errorf("%w: asset symbol is required", ErrValidation)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: unknown asset category %q", ErrValidation, a.Category)
	}
	if !a.Currency.Valid() {
		return fmt.Errorf("%w: unknown currency %q", ErrValidation, a.Currency)
	}
	if a.Quantity.IsNegative() {
		return fmt.Errorf("%w: asset quantity must be non-negative", ErrValidation)
	}
	if a.AvgPrice.IsNegative() || a.CurrentPrice.IsNegative() {
		return fmt.Errorf("%w: asset prices must be non-negative", ErrValidation)
	}
	return nil
}

// Value returns the market value of the position: quantity × current price.
func (a Asset) Value() decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}

// Cost returns the acquisition cost of the position: quantity × average price.
func (a Asset) Cost() decimal.Decimal {
	return a.Quantity.Mul(a.AvgPrice)
}

// PnL returns the unrealized profit or loss: (current − avg) × quantity.
func (a Asset) PnL() decimal.Decimal {
	return a.CurrentPrice.Sub(a.AvgPrice).Mul(a.Quantity)
}

// PnLPercent returns the unrealized profit or loss as a percentage of the
// average price. Zero average price yields zero rather than a division error.
func (a Asset) PnLPercent() decimal.Decimal {
	if a.AvgPrice.IsZero() {
		return decimal.Zero
	}
	return a.CurrentPrice.Sub(a.AvgPrice).Div(a.AvgPrice).Mul(decimal.NewFromInt(100))
}
