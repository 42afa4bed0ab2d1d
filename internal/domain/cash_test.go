package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCashBalance(t *testing.T) {
	txs := []CashTransaction{
		{SourceID: "a", Type: CashIncome, Amount: dec("5000000")},
		{SourceID: "a", Type: CashOutcome, Amount: dec("1500000")},
		{SourceID: "b", Type: CashIncome, Amount: dec("2000000")},
	}

	if got := CashBalance(txs); !got.Equal(dec("5500000")) {
		t.Errorf("CashBalance = %s, want 5500000", got)
	}
	if got := AccountBalance(txs, "a"); !got.Equal(dec("3500000")) {
		t.Errorf("AccountBalance(a) = %s, want 3500000", got)
	}
	if got := AccountBalance(txs, "missing"); !got.IsZero() {
		t.Errorf("AccountBalance(missing) = %s, want 0", got)
	}
}

func TestCashBalanceEmpty(t *testing.T) {
	if got := CashBalance(nil); !got.IsZero() {
		t.Errorf("CashBalance(nil) = %s, want 0", got)
	}
}

func TestCashTransactionValidate(t *testing.T) {
	tx := CashTransaction{SourceID: "a", Type: CashIncome, Amount: dec("100")}
	if err := tx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := tx
	bad.Amount = dec("-1")
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative amount")
	}

	bad = tx
	bad.Type = "Transfer"
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown type")
	}

	bad = tx
	bad.SourceID = ""
	if err := bad.Validate(); err == nil {
		t.Error("expected error for missing source")
	}
}

func TestPercentOf(t *testing.T) {
	if got := PercentOf(dec("25"), dec("200")); !got.Equal(dec("12.5")) {
		t.Errorf("PercentOf = %s, want 12.5", got)
	}
	if got := PercentOf(dec("25"), decimal.Zero); !got.IsZero() {
		t.Errorf("PercentOf with zero total = %s, want 0", got)
	}
}

func TestSafeParse(t *testing.T) {
	if got := SafeParse("16234.5"); !got.Equal(dec("16234.5")) {
		t.Errorf("SafeParse = %s, want 16234.5", got)
	}
	if got := SafeParse(""); !got.IsZero() {
		t.Errorf("SafeParse(empty) = %s, want 0", got)
	}
	if got := SafeParse("not-a-number"); !got.IsZero() {
		t.Errorf("SafeParse(garbage) = %s, want 0", got)
	}
}
