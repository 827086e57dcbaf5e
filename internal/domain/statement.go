package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StatementLineKind distinguishes ledger entries from interleaved invoice
// document rows in the richer statement variant.
type StatementLineKind string

const (
	StatementLineEntry   StatementLineKind = "entry"
	StatementLineInvoice StatementLineKind = "invoice"
)

// StatementLine is one chronological row of an account statement. Only
// entry rows move the running balance; invoice rows annotate.
type StatementLine struct {
	Kind           StatementLineKind `json:"kind"`
	Date           time.Time         `json:"date"`
	Description    string            `json:"description"`
	ReferenceType  string            `json:"reference_type,omitempty"`
	ReferenceID    string            `json:"reference_id,omitempty"`
	Debit          decimal.Decimal   `json:"debit"`
	Credit         decimal.Decimal   `json:"credit"`
	RunningBalance decimal.Decimal   `json:"running_balance"`
}

// AccountStatement covers the window (startDate, endDate]. The opening
// balance is the account balance as of startDate; the identity
// closing == opening + debits - credits holds exactly over the window.
type AccountStatement struct {
	AccountID      string          `json:"account_id"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	Lines          []StatementLine `json:"lines"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	ClosingBalance decimal.Decimal `json:"closing_balance"`
}

// BuildStatement orders entries chronologically and computes a running
// balance per line. Debit increases the balance, credit decreases it;
// the sign convention is fixed and never flipped per account type.
func BuildStatement(accountID string, startDate, endDate time.Time, opening decimal.Decimal, entries []*LedgerEntry) *AccountStatement {
	return BuildStatementWithInvoices(accountID, startDate, endDate, opening, entries, nil)
}

// BuildStatementWithInvoices is the richer variant that interleaves the
// originating invoice documents between entry rows.
func BuildStatementWithInvoices(accountID string, startDate, endDate time.Time, opening decimal.Decimal, entries []*LedgerEntry, invoices []InvoiceSummary) *AccountStatement {
	stmt := &AccountStatement{
		AccountID:      accountID,
		StartDate:      startDate,
		EndDate:        endDate,
		OpeningBalance: opening,
		Lines:          make([]StatementLine, 0, len(entries)+len(invoices)),
		TotalDebits:    decimal.Zero,
		TotalCredits:   decimal.Zero,
	}

	for _, e := range entries {
		line := StatementLine{
			Kind:          StatementLineEntry,
			Date:          e.TransactionDate,
			Description:   e.Description,
			ReferenceType: e.ReferenceType,
			ReferenceID:   e.ReferenceID,
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
		}

		if e.TransactionType == TransactionDebit {
			line.Debit = e.Amount
		} else {
			line.Credit = e.Amount
		}

		stmt.Lines = append(stmt.Lines, line)
	}

	for _, inv := range invoices {
		stmt.Lines = append(stmt.Lines, StatementLine{
			Kind:          StatementLineInvoice,
			Date:          inv.InvoiceDate,
			Description:   "Invoice " + inv.InvoiceNumber,
			ReferenceType: ReferenceTypeInvoice,
			ReferenceID:   inv.InvoiceID,
			Debit:         decimal.Zero,
			Credit:        decimal.Zero,
		})
	}

	sort.SliceStable(stmt.Lines, func(i, j int) bool {
		return stmt.Lines[i].Date.Before(stmt.Lines[j].Date)
	})

	running := opening
	for i := range stmt.Lines {
		running = running.Add(stmt.Lines[i].Debit).Sub(stmt.Lines[i].Credit)
		stmt.Lines[i].RunningBalance = running

		stmt.TotalDebits = stmt.TotalDebits.Add(stmt.Lines[i].Debit)
		stmt.TotalCredits = stmt.TotalCredits.Add(stmt.Lines[i].Credit)
	}

	stmt.ClosingBalance = opening.Add(stmt.TotalDebits).Sub(stmt.TotalCredits)

	return stmt
}
