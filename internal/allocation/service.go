// Package allocation computes the net-worth breakdown by asset category and
// cash account type.
package allocation

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
	"github.com/arthadash/artha/internal/portfolio"
)

// DefaultColor is the neutral swatch for buckets without a fixed color.
const DefaultColor = "#cbd5e1"

// colors maps known categories and account types to their fixed display
// colors. The chart palette is part of the API contract with the dashboard.
var colors = map[string]string{
	string(domain.CategoryIndoStock):   "#2dd4bf",
	string(domain.CategoryUSStock):     "#fbbf24",
	string(domain.CategoryCrypto):      "#a855f7",
	string(domain.CategoryObligasi):    "#f87171",
	string(domain.CategoryReksadanaPU): "#38bdf8",
	string(domain.CategorySBNRetail):   "#fb923c",
	string(domain.CategoryObligasiFR):  "#e879f9",
	string(domain.AccountSavings):      "#4ade80",
	string(domain.AccountRDN):          "#818cf8",
}

// AccountSource provides cash accounts. Satisfied by cash.Repository.
type AccountSource interface {
	GetAccounts(ctx context.Context) ([]domain.AccountSource, error)
}

// Service computes allocations. Asset values are bucketed by category; each
// cash account with a positive balance contributes to a bucket keyed by its
// account type. Recomputed on every call, never persisted.
type Service struct {
	assets   portfolio.AssetSource
	accounts AccountSource
	cash     portfolio.CashSource
	fx       portfolio.Converter
}

// NewService creates the allocation aggregator.
func NewService(assets portfolio.AssetSource, accounts AccountSource, cash portfolio.CashSource, fx portfolio.Converter) *Service {
	return &Service{assets: assets, accounts: accounts, cash: cash, fx: fx}
}

// Allocations returns the breakdown sorted descending by absolute value.
// Percentages are shares of the grand total, zero when the total is zero.
func (s *Service) Allocations(ctx context.Context) ([]domain.Allocation, error) {
	assets, err := s.assets.GetAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching assets: %w", err)
	}
	accounts, err := s.accounts.GetAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching accounts: %w", err)
	}
	txs, err := s.cash.GetTransactions(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("fetching cash transactions: %w", err)
	}

	buckets := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	add := func(label string, v decimal.Decimal) {
		if _, ok := buckets[label]; !ok {
			order = append(order, label)
		}
		buckets[label] = buckets[label].Add(v)
	}

	total := decimal.Zero
	for _, a := range assets {
		v := s.fx.ToIDR(a.Value(), a.Currency)
		add(string(a.Category), v)
		total = total.Add(v)
	}

	for _, acc := range accounts {
		balance := domain.AccountBalance(txs, acc.ID)
		if !balance.IsPositive() {
			continue
		}
		add(string(acc.Type), balance)
		total = total.Add(balance)
	}

	out := lo.Map(order, func(label string, _ int) domain.Allocation {
		v := buckets[label]
		color, ok := colors[label]
		if !ok {
			color = DefaultColor
		}
		return domain.Allocation{
			Label:      label,
			Value:      v,
			Percentage: domain.PercentOf(v, total),
			Color:      color,
		}
	})

	// Descending by absolute value is a contract with the chart, not a
	// cosmetic choice.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out, nil
}
