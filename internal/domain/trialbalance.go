package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals accumulates one account's debit and credit totals as of a
// date. Balance = DebitTotal - CreditTotal.
type AccountTotals struct {
	AccountID   string          `json:"account_id"`
	AccountType AccountType     `json:"account_type"`
	DebitTotal  decimal.Decimal `json:"debit_total"`
	CreditTotal decimal.Decimal `json:"credit_total"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalance lists every account with activity as of AsOf. A consistent
// double-entry ledger sums to zero system-wide.
type TrialBalance struct {
	AsOf         time.Time       `json:"as_of"`
	Accounts     []AccountTotals `json:"accounts"`
	TotalDebits  decimal.Decimal `json:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits"`
}

// Balanced reports whether total debits equal total credits.
func (tb *TrialBalance) Balanced() bool {
	return tb.TotalDebits.Equal(tb.TotalCredits)
}

// BuildTrialBalance assembles the report and surfaces an imbalance as
// ErrTrialBalanceMismatch. A difference indicates a broken invariant
// upstream (a non-atomic double entry) and is never silently tolerated.
func BuildTrialBalance(asOf time.Time, rows []AccountTotals) (*TrialBalance, error) {
	tb := &TrialBalance{
		AsOf:         asOf,
		Accounts:     make([]AccountTotals, 0, len(rows)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}

	for _, row := range rows {
		row.Balance = row.DebitTotal.Sub(row.CreditTotal)
		tb.Accounts = append(tb.Accounts, row)

		tb.TotalDebits = tb.TotalDebits.Add(row.DebitTotal)
		tb.TotalCredits = tb.TotalCredits.Add(row.CreditTotal)
	}

	if !tb.Balanced() {
		return tb, Invalid(ErrTrialBalanceMismatch, "debits %s, credits %s as of %s",
			tb.TotalDebits.String(), tb.TotalCredits.String(), asOf.Format(time.RFC3339))
	}

	return tb, nil
}
