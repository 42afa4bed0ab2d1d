package allocation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/arthadash/artha/internal/domain"
	"github.com/arthadash/artha/internal/fx"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type mockAssets struct{ assets []domain.Asset }

func (m *mockAssets) GetAssets(_ context.Context) ([]domain.Asset, error) {
	return m.assets, nil
}

type mockAccounts struct{ accounts []domain.AccountSource }

func (m *mockAccounts) GetAccounts(_ context.Context) ([]domain.AccountSource, error) {
	return m.accounts, nil
}

type mockCash struct{ txs []domain.CashTransaction }

func (m *mockCash) GetTransactions(_ context.Context, _ string) ([]domain.CashTransaction, error) {
	return m.txs, nil
}

func converter(rate string) *fx.Service {
	return fx.NewService(nil, fx.NewMemoryRateRepository(), dec(rate), nil)
}

func service(assets []domain.Asset, accounts []domain.AccountSource, txs []domain.CashTransaction) *Service {
	return NewService(&mockAssets{assets}, &mockAccounts{accounts}, &mockCash{txs}, converter("15000"))
}

func TestAllocationsByCategory(t *testing.T) {
	assets := []domain.Asset{
		{Symbol: "BBCA", Category: domain.CategoryIndoStock, Quantity: dec("100"), CurrentPrice: dec("10000"), Currency: domain.IDR},
		{Symbol: "TLKM", Category: domain.CategoryIndoStock, Quantity: dec("100"), CurrentPrice: dec("4000"), Currency: domain.IDR},
		{Symbol: "AAPL", Category: domain.CategoryUSStock, Quantity: dec("10"), CurrentPrice: dec("200"), Currency: domain.USD},
	}

	got, err := service(assets, nil, nil).Allocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("allocation rows = %d, want 2", len(got))
	}

	// USD bucket: 10 × 200 × 15000 = 30,000,000; IDR bucket: 1,400,000.
	if got[0].Label != string(domain.CategoryUSStock) || !got[0].Value.Equal(dec("30000000")) {
		t.Errorf("top bucket = %s %s, want US Stock 30000000", got[0].Label, got[0].Value)
	}
	if got[1].Label != string(domain.CategoryIndoStock) || !got[1].Value.Equal(dec("1400000")) {
		t.Errorf("second bucket = %s %s, want Indo Stock 1400000", got[1].Label, got[1].Value)
	}
}

func TestAllocationsSortedDescending(t *testing.T) {
	assets := []domain.Asset{
		{Symbol: "X", Category: domain.CategoryCrypto, Quantity: dec("1"), CurrentPrice: dec("100"), Currency: domain.IDR},
		{Symbol: "Y", Category: domain.CategoryIndoStock, Quantity: dec("1"), CurrentPrice: dec("5000"), Currency: domain.IDR},
		{Symbol: "Z", Category: domain.CategoryObligasi, Quantity: dec("1"), CurrentPrice: dec("900"), Currency: domain.IDR},
	}

	got, err := service(assets, nil, nil).Allocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Value.GreaterThan(got[i-1].Value) {
			t.Errorf("allocations not sorted descending at %d: %s > %s", i, got[i].Value, got[i-1].Value)
		}
	}
}

func TestAllocationsPercentagesSumTo100(t *testing.T) {
	assets := []domain.Asset{
		{Symbol: "A", Category: domain.CategoryIndoStock, Quantity: dec("3"), CurrentPrice: dec("1000"), Currency: domain.IDR},
		{Symbol: "B", Category: domain.CategoryCrypto, Quantity: dec("7"), CurrentPrice: dec("1000"), Currency: domain.IDR},
	}
	accounts := []domain.AccountSource{{ID: "acc1", Name: "BCA", Type: domain.AccountSavings, Currency: domain.IDR}}
	txs := []domain.CashTransaction{{SourceID: "acc1", Type: domain.CashIncome, Amount: dec("5000")}}

	got, err := service(assets, accounts, txs).Allocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := decimal.Zero
	for _, a := range got {
		sum = sum.Add(a.Percentage)
	}
	if diff := sum.Sub(dec("100")).Abs(); diff.GreaterThan(dec("0.0000001")) {
		t.Errorf("percentages sum = %s, want 100", sum)
	}
}

func TestAllocationsZeroTotal(t *testing.T) {
	assets := []domain.Asset{
		{Symbol: "A", Category: domain.CategoryIndoStock, Quantity: decimal.Zero, CurrentPrice: dec("1000"), Currency: domain.IDR},
	}

	got, err := service(assets, nil, nil).Allocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, a := range got {
		if !a.Percentage.IsZero() {
			t.Errorf("percentage with zero total = %s, want 0", a.Percentage)
		}
	}
}

func TestAllocationsCashBuckets(t *testing.T) {
	accounts := []domain.AccountSource{
		{ID: "sav", Name: "BCA", Type: domain.AccountSavings, Currency: domain.IDR},
		{ID: "rdn", Name: "Stockbit", Type: domain.AccountRDN, Currency: domain.IDR},
		{ID: "neg", Name: "Overdrawn", Type: domain.AccountSavings, Currency: domain.IDR},
	}
	txs := []domain.CashTransaction{
		{SourceID: "sav", Type: domain.CashIncome, Amount: dec("8000")},
		{SourceID: "rdn", Type: domain.CashIncome, Amount: dec("2000")},
		{SourceID: "neg", Type: domain.CashOutcome, Amount: dec("500")},
	}

	got, err := service(nil, accounts, txs).Allocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("allocation rows = %d, want 2 (negative balance excluded)", len(got))
	}
	if got[0].Label != string(domain.AccountSavings) || !got[0].Value.Equal(dec("8000")) {
		t.Errorf("top bucket = %s %s, want Savings 8000", got[0].Label, got[0].Value)
	}
	if got[1].Label != string(domain.AccountRDN) || !got[1].Value.Equal(dec("2000")) {
		t.Errorf("second bucket = %s %s, want RDN 2000", got[1].Label, got[1].Value)
	}
}

func TestAllocationsColors(t *testing.T) {
	assets := []domain.Asset{
		{Symbol: "BBCA", Category: domain.CategoryIndoStock, Quantity: dec("1"), CurrentPrice: dec("1000"), Currency: domain.IDR},
		{Symbol: "???", Category: "Mystery", Quantity: dec("1"), CurrentPrice: dec("1"), Currency: domain.IDR},
	}

	got, err := service(assets, nil, nil).Allocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Color != "#2dd4bf" {
		t.Errorf("Indo Stock color = %s, want #2dd4bf", got[0].Color)
	}
	if got[1].Color != DefaultColor {
		t.Errorf("unknown category color = %s, want default %s", got[1].Color, DefaultColor)
	}
}
