package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of the ledger an entry sits on.
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// Opposite returns the other ledger side, used when reversing an entry.
func (t TransactionType) Opposite() TransactionType {
	if t == TransactionDebit {
		return TransactionCredit
	}
	return TransactionDebit
}

// Reference types linking an entry to its originating document.
const (
	ReferenceTypeInvoice    = "invoice"
	ReferenceTypePayment    = "payment"
	ReferenceTypeAdjustment = "adjustment"
)

// LedgerEntry is one side of a double-entry transaction. Entries are
// immutable once created; corrections are new reversing entries that
// reference the original.
type LedgerEntry struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	AccountType     AccountType     `json:"account_type"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"reference_type"`
	ReferenceID     string          `json:"reference_id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Currency        string          `json:"currency"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Validate checks entry invariants before it is written.
func (e *LedgerEntry) Validate() error {
	ref := AccountRef{AccountID: e.AccountID, AccountType: e.AccountType}
	if err := ref.Validate(); err != nil {
		return err
	}

	if e.TransactionType != TransactionDebit && e.TransactionType != TransactionCredit {
		return Invalid(ErrInvalidTransactionType, "got %q", e.TransactionType)
	}

	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if e.Description == "" {
		return ErrMissingDescription
	}

	if e.ReferenceType == "" {
		return ErrMissingReference
	}

	if e.CreatedBy == "" {
		return ErrMissingCreatedBy
	}

	return nil
}
