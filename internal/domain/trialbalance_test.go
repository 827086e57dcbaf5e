package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestBuildTrialBalance(t *testing.T) {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("balanced ledger sums to zero", func(t *testing.T) {
		rows := []AccountTotals{
			{AccountID: "cust-1", AccountType: AccountTypeCustomer, DebitTotal: decimal.NewFromInt(1000), CreditTotal: decimal.NewFromInt(200)},
			{AccountID: "rev-1", AccountType: AccountTypeAccount, DebitTotal: decimal.Zero, CreditTotal: decimal.NewFromInt(1000)},
			{AccountID: "cash", AccountType: AccountTypeAccount, DebitTotal: decimal.NewFromInt(200), CreditTotal: decimal.Zero},
		}

		tb, err := BuildTrialBalance(asOf, rows)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !tb.Balanced() {
			t.Error("expected balanced trial balance")
		}

		assertDecimal(t, "total debits", tb.TotalDebits, "1200")
		assertDecimal(t, "total credits", tb.TotalCredits, "1200")
		assertDecimal(t, "cust-1 balance", tb.Accounts[0].Balance, "800")
		assertDecimal(t, "rev-1 balance", tb.Accounts[1].Balance, "-1000")
	})

	t.Run("imbalance is surfaced, not tolerated", func(t *testing.T) {
		rows := []AccountTotals{
			{AccountID: "cust-1", AccountType: AccountTypeCustomer, DebitTotal: decimal.NewFromInt(1000)},
		}

		tb, err := BuildTrialBalance(asOf, rows)
		if !errors.Is(err, ErrTrialBalanceMismatch) {
			t.Fatalf("expected ErrTrialBalanceMismatch, got %v", err)
		}

		// the report is still returned so the caller can inspect the damage
		if tb == nil || tb.Balanced() {
			t.Error("expected an unbalanced report alongside the error")
		}
	})

	t.Run("empty ledger is balanced", func(t *testing.T) {
		tb, err := BuildTrialBalance(asOf, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !tb.Balanced() {
			t.Error("expected empty trial balance to be balanced")
		}
	})
}
