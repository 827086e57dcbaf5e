package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// CreateDoubleEntryRequest represents a request to post a double entry.
type CreateDoubleEntryRequest struct {
	DebitAccountID    string          `json:"debit_account_id"`
	DebitAccountType  string          `json:"debit_account_type"`
	CreditAccountID   string          `json:"credit_account_id"`
	CreditAccountType string          `json:"credit_account_type"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	ReferenceType     string          `json:"reference_type"`
	ReferenceID       string          `json:"reference_id"`
	Currency          string          `json:"currency,omitempty"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate,omitempty"`
	TransactionDate   *time.Time      `json:"transaction_date,omitempty"`
	CreatedBy         string          `json:"created_by"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDoubleEntryRequest) ToUseCaseInput() usecase.CreateDoubleEntryInput {
	return usecase.CreateDoubleEntryInput{
		DebitAccount: domain.AccountRef{
			AccountID:   r.DebitAccountID,
			AccountType: domain.AccountType(r.DebitAccountType),
		},
		CreditAccount: domain.AccountRef{
			AccountID:   r.CreditAccountID,
			AccountType: domain.AccountType(r.CreditAccountType),
		},
		Amount:          r.Amount,
		Description:     r.Description,
		ReferenceType:   r.ReferenceType,
		ReferenceID:     r.ReferenceID,
		Currency:        r.Currency,
		ExchangeRate:    r.ExchangeRate,
		TransactionDate: r.TransactionDate,
		CreatedBy:       r.CreatedBy,
	}
}

// ReverseEntriesRequest represents a request to reverse a posted reference.
type ReverseEntriesRequest struct {
	ReferenceType string `json:"reference_type"`
	ReferenceID   string `json:"reference_id"`
	Reason        string `json:"reason"`
	CreatedBy     string `json:"created_by"`
}

// ToUseCaseInput converts to use case input.
func (r *ReverseEntriesRequest) ToUseCaseInput() usecase.ReverseEntriesInput {
	return usecase.ReverseEntriesInput{
		ReferenceType: r.ReferenceType,
		ReferenceID:   r.ReferenceID,
		Reason:        r.Reason,
		CreatedBy:     r.CreatedBy,
	}
}

// LineItemRequest represents one invoice line in a calculation request.
// The legacy "discount" field is accepted as an alias for the first-tier
// percentage; "discount1_percent" wins when both are present.
type LineItemRequest struct {
	ItemID           string          `json:"item_id"`
	Description      string          `json:"description,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Discount         decimal.Decimal `json:"discount,omitempty"`
	Discount1Percent decimal.Decimal `json:"discount1_percent,omitempty"`
	Discount1Amount  decimal.Decimal `json:"discount1_amount,omitempty"`
	Discount2Percent decimal.Decimal `json:"discount2_percent,omitempty"`
	Discount2Amount  decimal.Decimal `json:"discount2_amount,omitempty"`
	ClaimAccountID   string          `json:"claim_account_id,omitempty"`
	GSTRate          decimal.Decimal `json:"gst_rate,omitempty"`
	WHTRate          decimal.Decimal `json:"wht_rate,omitempty"`
	AdvanceTaxRate   decimal.Decimal `json:"advance_tax_rate,omitempty"`
	NonFiler         bool            `json:"non_filer,omitempty"`
}

// ToDomain converts to a domain line item.
func (r *LineItemRequest) ToDomain() domain.LineItem {
	discount1 := r.Discount1Percent
	if discount1.IsZero() {
		discount1 = r.Discount
	}

	return domain.LineItem{
		ItemID:           r.ItemID,
		Description:      r.Description,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		Discount1Percent: discount1,
		Discount1Amount:  r.Discount1Amount,
		Discount2Percent: r.Discount2Percent,
		Discount2Amount:  r.Discount2Amount,
		ClaimAccountID:   r.ClaimAccountID,
		GSTRate:          r.GSTRate,
		WHTRate:          r.WHTRate,
		AdvanceTaxRate:   r.AdvanceTaxRate,
		NonFiler:         r.NonFiler,
	}
}

// CalculateInvoiceRequest represents an invoice calculation request.
type CalculateInvoiceRequest struct {
	Items                  []LineItemRequest `json:"items"`
	InvoiceDiscountPercent decimal.Decimal   `json:"invoice_discount_percent,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CalculateInvoiceRequest) ToUseCaseInput() usecase.CalculateInvoiceInput {
	items := make([]domain.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.ToDomain()
	}
	return usecase.CalculateInvoiceInput{
		Items:                  items,
		InvoiceDiscountPercent: r.InvoiceDiscountPercent,
	}
}

// ConfirmInvoiceRequest represents an invoice confirmation request.
type ConfirmInvoiceRequest struct {
	CustomerAccountID      string            `json:"customer_account_id"`
	RevenueAccountID       string            `json:"revenue_account_id"`
	Items                  []LineItemRequest `json:"items"`
	InvoiceDiscountPercent decimal.Decimal   `json:"invoice_discount_percent,omitempty"`
	CreatedBy              string            `json:"created_by"`
}

// ToUseCaseInput converts to use case input.
func (r *ConfirmInvoiceRequest) ToUseCaseInput(invoiceID string) usecase.ConfirmInvoiceInput {
	items := make([]domain.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.ToDomain()
	}
	return usecase.ConfirmInvoiceInput{
		InvoiceID: invoiceID,
		CustomerAccount: domain.AccountRef{
			AccountID:   r.CustomerAccountID,
			AccountType: domain.AccountTypeCustomer,
		},
		RevenueAccount: domain.AccountRef{
			AccountID:   r.RevenueAccountID,
			AccountType: domain.AccountTypeAccount,
		},
		Items:                  items,
		InvoiceDiscountPercent: r.InvoiceDiscountPercent,
		CreatedBy:              r.CreatedBy,
	}
}

// CancelInvoiceRequest represents an invoice cancellation request.
type CancelInvoiceRequest struct {
	Reason    string `json:"reason"`
	CreatedBy string `json:"created_by"`
}
