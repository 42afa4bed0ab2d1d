package portfolio

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
)

// AssetSource provides the asset list. Satisfied by asset.Repository.
type AssetSource interface {
	GetAssets(ctx context.Context) ([]domain.Asset, error)
}

// CashSource provides cash ledger entries. Satisfied by cash.Repository.
type CashSource interface {
	GetTransactions(ctx context.Context, sourceID string) ([]domain.CashTransaction, error)
}

// Converter converts monetary amounts to IDR. Satisfied by fx.Service.
type Converter interface {
	ToIDR(value decimal.Decimal, currency domain.Currency) decimal.Decimal
}

// Service computes the portfolio summary. Every call is a fresh aggregation
// over the current asset list and cash ledger; nothing is cached.
type Service struct {
	assets AssetSource
	cash   CashSource
	fx     Converter
}

// NewService creates the summary aggregator.
func NewService(assets AssetSource, cash CashSource, fx Converter) *Service {
	return &Service{assets: assets, cash: cash, fx: fx}
}

type runningTotals struct {
	value decimal.Decimal
	pnl   decimal.Decimal
	cost  decimal.Decimal
}

// Summary aggregates all holdings and cash balances into one net-worth
// snapshot. Asset figures are converted to IDR before accumulation. The
// total cash balance is added to TotalValue but deliberately excluded from
// the P&L figures: ledger cash has no acquisition cost in this model.
func (s *Service) Summary(ctx context.Context) (domain.PortfolioSummary, error) {
	assets, err := s.assets.GetAssets(ctx)
	if err != nil {
		return domain.PortfolioSummary{}, fmt.Errorf("fetching assets: %w", err)
	}
	txs, err := s.cash.GetTransactions(ctx, "")
	if err != nil {
		return domain.PortfolioSummary{}, fmt.Errorf("fetching cash transactions: %w", err)
	}

	totals := lo.Reduce(assets, func(acc runningTotals, a domain.Asset, _ int) runningTotals {
		return runningTotals{
			value: acc.value.Add(s.fx.ToIDR(a.Value(), a.Currency)),
			pnl:   acc.pnl.Add(s.fx.ToIDR(a.PnL(), a.Currency)),
			cost:  acc.cost.Add(s.fx.ToIDR(a.Cost(), a.Currency)),
		}
	}, runningTotals{value: decimal.Zero, pnl: decimal.Zero, cost: decimal.Zero})

	summary := domain.PortfolioSummary{
		TotalValue:      totals.value.Add(domain.CashBalance(txs)),
		TotalPnL:        totals.pnl,
		TotalPnLPercent: domain.PercentOf(totals.pnl, totals.cost),
	}
	summary.BestPerformer, summary.WorstPerformer = performers(assets)
	return summary, nil
}

// performers picks the holdings with the highest and lowest unrealized
// return. Currency conversion is irrelevant here: P&L percent is a ratio in
// the asset's own currency.
func performers(assets []domain.Asset) (best, worst *domain.Performer) {
	if len(assets) == 0 {
		return nil, nil
	}

	bestAsset, worstAsset := assets[0], assets[0]
	for _, a := range assets[1:] {
		if a.PnLPercent().GreaterThan(bestAsset.PnLPercent()) {
			bestAsset = a
		}
		if a.PnLPercent().LessThan(worstAsset.PnLPercent()) {
			worstAsset = a
		}
	}

	return &domain.Performer{Symbol: bestAsset.Symbol, PnLPercent: bestAsset.PnLPercent()},
		&domain.Performer{Symbol: worstAsset.Symbol, PnLPercent: worstAsset.PnLPercent()}
}
