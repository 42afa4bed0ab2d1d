package export

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
	"github.com/arthadash/artha/internal/history"
)

// Report is one full dashboard extract: the current summary and allocation
// plus the complete history timeline and asset list.
type Report struct {
	GeneratedAt time.Time
	Summary     domain.PortfolioSummary
	Allocations []domain.Allocation
	Assets      []domain.Asset
	History     []domain.HistoryItem
}

// Summarizer computes the current portfolio summary.
type Summarizer interface {
	Summary(ctx context.Context) (domain.PortfolioSummary, error)
}

// Allocator computes the current allocation breakdown.
type Allocator interface {
	Allocations(ctx context.Context) ([]domain.Allocation, error)
}

// PortfolioSource provides the asset list and history timeline.
type PortfolioSource interface {
	List(ctx context.Context) ([]domain.Asset, error)
	History(ctx context.Context, rangeDesc string) ([]domain.HistoryItem, error)
}

// ReportWriter writes a report to a spreadsheet destination.
type ReportWriter interface {
	Write(ctx context.Context, r Report) error
}

// Service assembles reports and delegates writing to the configured writers.
type Service struct {
	summarizer Summarizer
	allocator  Allocator
	portfolio  PortfolioSource
	writers    []ReportWriter
	loc        *time.Location
}

// NewService creates a new export Service.
func NewService(summarizer Summarizer, allocator Allocator, portfolio PortfolioSource, loc *time.Location, writers ...ReportWriter) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		summarizer: summarizer,
		allocator:  allocator,
		portfolio:  portfolio,
		writers:    writers,
		loc:        loc,
	}
}

// Build assembles a full report from the current portfolio state.
func (s *Service) Build(ctx context.Context) (Report, error) {
	summary, err := s.summarizer.Summary(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("building summary: %w", err)
	}
	allocations, err := s.allocator.Allocations(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("building allocations: %w", err)
	}
	assets, err := s.portfolio.List(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("listing assets: %w", err)
	}
	items, err := s.portfolio.History(ctx, "ALL")
	if err != nil {
		return Report{}, fmt.Errorf("fetching history: %w", err)
	}

	return Report{
		GeneratedAt: time.Now().In(s.loc),
		Summary:     summary,
		Allocations: allocations,
		Assets:      assets,
		History:     items,
	}, nil
}

// Export builds a report and writes it to every configured destination.
// Implements worker.AfterSnapshotHook.
func (s *Service) Export(ctx context.Context) error {
	report, err := s.Build(ctx)
	if err != nil {
		return err
	}

	for _, w := range s.writers {
		if err := w.Write(ctx, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// buildSummaryRows builds the Summary sheet data.
func buildSummaryRows(r Report) [][]any {
	rows := [][]any{
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Total Value (IDR)", toFloat(r.Summary.TotalValue)},
		{"Total P&L (IDR)", toFloat(r.Summary.TotalPnL)},
		{"Total P&L (%)", toFloat(r.Summary.TotalPnLPercent)},
	}
	if p := r.Summary.BestPerformer; p != nil {
		rows = append(rows, []any{"Best Performer", p.Symbol, toFloat(p.PnLPercent)})
	}
	if p := r.Summary.WorstPerformer; p != nil {
		rows = append(rows, []any{"Worst Performer", p.Symbol, toFloat(p.PnLPercent)})
	}
	return rows
}

// buildAllocationRows builds the Allocation sheet data.
// Columns: Label | Value (IDR) | Share (%)
func buildAllocationRows(r Report) [][]any {
	rows := make([][]any, 0, len(r.Allocations)+1)
	rows = append(rows, []any{"Label", "Value (IDR)", "Share (%)"})
	for _, a := range r.Allocations {
		rows = append(rows, []any{a.Label, toFloat(a.Value), toFloat(a.Percentage)})
	}
	return rows
}

// buildAssetRows builds the Assets sheet data. Lots shows the quantity in
// display trading units (Indo stocks trade in lots of 100 shares).
// Columns: Symbol | Name | Category | Currency | Quantity | Lots | Avg Price | Current Price | Value | P&L
func buildAssetRows(r Report) [][]any {
	rows := make([][]any, 0, len(r.Assets)+1)
	rows = append(rows, []any{
		"Symbol", "Name", "Category", "Currency",
		"Quantity", "Lots", "Avg Price", "Current Price", "Value", "P&L",
	})
	for _, a := range r.Assets {
		lots := a.Quantity.Div(decimal.NewFromInt(int64(a.Category.LotSize())))
		rows = append(rows, []any{
			a.Symbol, a.Name, string(a.Category), string(a.Currency),
			toFloat(a.Quantity), toFloat(lots), toFloat(a.AvgPrice), toFloat(a.CurrentPrice),
			toFloat(a.Value()), toFloat(a.PnL()),
		})
	}
	return rows
}

// buildHistoryRows builds the History sheet data, dates rendered in loc.
// Columns: Date | Type | Value | Amount | Notes
func buildHistoryRows(r Report, loc *time.Location) [][]any {
	rows := make([][]any, 0, len(r.History)+1)
	rows = append(rows, []any{"Date", "Type", "Value", "Amount", "Notes"})
	for _, it := range r.History {
		rows = append(rows, []any{
			history.DisplayDate(it.Date, loc), string(it.Type),
			toFloat(it.Value), toFloat(it.Amount), it.Notes,
		})
	}
	return rows
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
