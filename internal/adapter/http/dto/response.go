package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	AccountType     string          `json:"account_type"`
	TransactionType string          `json:"transaction_type"`
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

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		AccountID:       e.AccountID,
		AccountType:     string(e.AccountType),
		TransactionType: string(e.TransactionType),
		Amount:          e.Amount,
		Description:     e.Description,
		ReferenceType:   e.ReferenceType,
		ReferenceID:     e.ReferenceID,
		TransactionDate: e.TransactionDate,
		Currency:        e.Currency,
		ExchangeRate:    e.ExchangeRate,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// DoubleEntryResponse represents a posted debit/credit pair.
type DoubleEntryResponse struct {
	Debit  *EntryResponse `json:"debit"`
	Credit *EntryResponse `json:"credit"`
}

// DoubleEntryFromDomain converts a posted pair to a response.
func DoubleEntryFromDomain(pair *usecase.DoubleEntry) *DoubleEntryResponse {
	return &DoubleEntryResponse{
		Debit:  EntryFromDomain(pair.Debit),
		Credit: EntryFromDomain(pair.Credit),
	}
}

// BalanceResponse represents an account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	AsOf      time.Time       `json:"as_of"`
	Balance   decimal.Decimal `json:"balance"`
}

// ConfirmedInvoiceResponse pairs invoice totals with the posted entries.
type ConfirmedInvoiceResponse struct {
	Totals *domain.InvoiceTotals `json:"totals"`
	Posted *DoubleEntryResponse  `json:"posted"`
}

// DeletedResponse reports how many entries a delete removed.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
