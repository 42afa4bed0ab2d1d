package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SafeParse parses a string into a decimal, returning zero for invalid or
// empty input. Used at external boundaries (API responses, spreadsheet
// cells) where a bad value should degrade to zero rather than fail.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// PercentOf returns part as a percentage of total, or zero when total is
// zero. Every percentage in the dashboard goes through this guard.
func PercentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred)
}
