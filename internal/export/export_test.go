package export

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/arthadash/artha/internal/domain"
)

type mockSources struct {
	summary     domain.PortfolioSummary
	allocations []domain.Allocation
	assets      []domain.Asset
	history     []domain.HistoryItem
	err         error
}

func (m *mockSources) Summary(_ context.Context) (domain.PortfolioSummary, error) {
	return m.summary, m.err
}

func (m *mockSources) Allocations(_ context.Context) ([]domain.Allocation, error) {
	return m.allocations, m.err
}

func (m *mockSources) List(_ context.Context) ([]domain.Asset, error) {
	return m.assets, m.err
}

func (m *mockSources) History(_ context.Context, rangeDesc string) ([]domain.HistoryItem, error) {
	if rangeDesc != "ALL" {
		return nil, errors.New("expected the full timeline")
	}
	return m.history, m.err
}

type mockWriter struct {
	reports []Report
	err     error
}

func (m *mockWriter) Write(_ context.Context, r Report) error {
	if m.err != nil {
		return m.err
	}
	m.reports = append(m.reports, r)
	return nil
}

func sampleSources() *mockSources {
	return &mockSources{
		summary: domain.PortfolioSummary{
			TotalValue: decimal.NewFromInt(15000000),
			TotalPnL:   decimal.NewFromInt(500000),
		},
		allocations: []domain.Allocation{
			{Label: "Indo Stock", Value: decimal.NewFromInt(10000000), Percentage: decimal.NewFromInt(66), Color: "#2dd4bf"},
			{Label: "Crypto", Value: decimal.NewFromInt(5000000), Percentage: decimal.NewFromInt(34), Color: "#a855f7"},
		},
		assets: []domain.Asset{
			{Symbol: "BBCA", Category: domain.CategoryIndoStock, Quantity: decimal.NewFromInt(100), AvgPrice: decimal.NewFromInt(9500), CurrentPrice: decimal.NewFromInt(10000), Currency: domain.IDR},
		},
		history: []domain.HistoryItem{
			{ID: "h1", Date: time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC), Value: decimal.NewFromInt(15000000), Type: domain.HistorySnapshot},
		},
	}
}

func TestExportWritesReport(t *testing.T) {
	src := sampleSources()
	writer := &mockWriter{}
	svc := NewService(src, src, src, time.UTC, writer)

	if err := svc.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if len(writer.reports) != 1 {
		t.Fatalf("reports written = %d, want 1", len(writer.reports))
	}
	r := writer.reports[0]
	if !r.Summary.TotalValue.Equal(decimal.NewFromInt(15000000)) {
		t.Errorf("TotalValue = %s, want 15000000", r.Summary.TotalValue)
	}
	if len(r.Allocations) != 2 {
		t.Errorf("allocations = %d, want 2", len(r.Allocations))
	}
	if len(r.History) != 1 {
		t.Errorf("history items = %d, want 1", len(r.History))
	}
}

func TestExportSourceFailure(t *testing.T) {
	src := sampleSources()
	src.err = errors.New("db down")
	writer := &mockWriter{}
	svc := NewService(src, src, src, time.UTC, writer)

	if err := svc.Export(context.Background()); err == nil {
		t.Fatal("expected error when sources fail")
	}
	if len(writer.reports) != 0 {
		t.Errorf("reports written = %d, want 0 on failure", len(writer.reports))
	}
}

func TestExportWriterFailure(t *testing.T) {
	src := sampleSources()
	writer := &mockWriter{err: errors.New("disk full")}
	svc := NewService(src, src, src, time.UTC, writer)

	if err := svc.Export(context.Background()); err == nil {
		t.Fatal("expected error when writer fails")
	}
}

func TestXLSXWriterProducesWorkbook(t *testing.T) {
	src := sampleSources()
	path := filepath.Join(t.TempDir(), "report.xlsx")
	svc := NewService(src, src, src, time.UTC, NewXLSXWriter(path, time.UTC))

	if err := svc.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("opening workbook: %v", err)
	}
	defer f.Close()

	for _, name := range []string{"Summary", "Allocation", "Assets", "History"} {
		idx, err := f.GetSheetIndex(name)
		if err != nil || idx < 0 {
			t.Errorf("sheet %s missing (index %d): %v", name, idx, err)
		}
	}

	label, err := f.GetCellValue("Allocation", "A2")
	if err != nil {
		t.Fatalf("reading allocation cell: %v", err)
	}
	if label != "Indo Stock" {
		t.Errorf("Allocation!A2 = %q, want Indo Stock", label)
	}

	symbol, err := f.GetCellValue("Assets", "A2")
	if err != nil {
		t.Fatalf("reading asset cell: %v", err)
	}
	if symbol != "BBCA" {
		t.Errorf("Assets!A2 = %q, want BBCA", symbol)
	}
}
