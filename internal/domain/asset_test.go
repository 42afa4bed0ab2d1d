package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAssetValue(t *testing.T) {
	a := Asset{Quantity: dec("100"), AvgPrice: dec("100"), CurrentPrice: dec("150")}
	if got := a.Value(); !got.Equal(dec("15000")) {
		t.Errorf("Value = %s, want 15000", got)
	}
}

func TestAssetPnL(t *testing.T) {
	a := Asset{Quantity: dec("100"), AvgPrice: dec("100"), CurrentPrice: dec("150")}
	if got := a.PnL(); !got.Equal(dec("5000")) {
		t.Errorf("PnL = %s, want 5000", got)
	}
	if got := a.PnLPercent(); !got.Equal(dec("50")) {
		t.Errorf("PnLPercent = %s, want 50", got)
	}
}

func TestAssetPnLNegative(t *testing.T) {
	a := Asset{Quantity: dec("50000"), AvgPrice: dec("120"), CurrentPrice: dec("100")}
	if got := a.PnL(); !got.Equal(dec("-1000000")) {
		t.Errorf("PnL = %s, want -1000000", got)
	}
}

func TestAssetPnLPercentZeroAvgPrice(t *testing.T) {
	a := Asset{Quantity: dec("10"), AvgPrice: decimal.Zero, CurrentPrice: dec("42")}
	if got := a.PnLPercent(); !got.IsZero() {
		t.Errorf("PnLPercent with zero avg price = %s, want 0", got)
	}
}

func TestAssetFractionalQuantity(t *testing.T) {
	a := Asset{Quantity: dec("1.5"), AvgPrice: dec("36666.67"), CurrentPrice: dec("45000")}
	if got := a.Value(); !got.Equal(dec("67500")) {
		t.Errorf("Value = %s, want 67500", got)
	}
}

func TestAssetValidate(t *testing.T) {
	valid := Asset{
		Symbol:       "BBCA",
		Category:     CategoryIndoStock,
		Quantity:     dec("15000"),
		AvgPrice:     dec("8333.33"),
		CurrentPrice: dec("10000"),
		Currency:     IDR,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Asset)
	}{
		{"missing symbol", func(a *Asset) { a.Symbol = "" }},
		{"unknown category", func(a *Asset) { a.Category = "Bonds" }},
		{"unknown currency", func(a *Asset) { a.Currency = "EUR" }},
		{"negative quantity", func(a *Asset) { a.Quantity = dec("-1") }},
		{"negative avg price", func(a *Asset) { a.AvgPrice = dec("-1") }},
		{"negative current price", func(a *Asset) { a.CurrentPrice = dec("-1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)
			if err := a.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCategoryDefaults(t *testing.T) {
	if got := CategoryUSStock.DefaultCurrency(); got != USD {
		t.Errorf("US Stock default currency = %s, want USD", got)
	}
	if got := CategoryIndoStock.DefaultCurrency(); got != IDR {
		t.Errorf("Indo Stock default currency = %s, want IDR", got)
	}
	if got := CategoryIndoStock.LotSize(); got != 100 {
		t.Errorf("Indo Stock lot size = %d, want 100", got)
	}
	if got := CategoryCrypto.LotSize(); got != 1 {
		t.Errorf("Crypto lot size = %d, want 1", got)
	}
}
