package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/infrastructure/metrics"
)

// InvoiceUseCase is the orchestrator seam: it runs the discount and tax
// pipeline during invoice composition (purely computational), and on a
// confirm or cancel action talks to the ledger.
type InvoiceUseCase struct {
	directory AccountDirectory
	ledger    *LedgerUseCase
	metrics   *metrics.Metrics
}

// NewInvoiceUseCase creates a new InvoiceUseCase. metrics may be nil.
func NewInvoiceUseCase(directory AccountDirectory, ledger *LedgerUseCase, metrics *metrics.Metrics) *InvoiceUseCase {
	return &InvoiceUseCase{
		directory: directory,
		ledger:    ledger,
		metrics:   metrics,
	}
}

// CalculateInvoiceInput represents raw invoice composition input.
type CalculateInvoiceInput struct {
	Items                  []domain.LineItem
	InvoiceDiscountPercent decimal.Decimal
}

// CalculateInvoice validates claim accounts and produces invoice totals.
// It performs no writes; validation failures reject the whole invoice
// before anything is persisted.
func (uc *InvoiceUseCase) CalculateInvoice(ctx context.Context, input CalculateInvoiceInput) (*domain.InvoiceTotals, error) {
	for _, item := range input.Items {
		if err := uc.validateClaimAccount(ctx, item); err != nil {
			return nil, err
		}
	}

	totals, err := domain.CalculateInvoiceTotals(input.Items, input.InvoiceDiscountPercent)
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoiceCalculations.Inc()
	}

	return totals, nil
}

// validateClaimAccount enforces that any line using the second discount
// tier names an existing, active, claims-eligible account to claim the
// discount back against.
func (uc *InvoiceUseCase) validateClaimAccount(ctx context.Context, item domain.LineItem) error {
	if !item.HasDiscount2() {
		return nil
	}

	if item.ClaimAccountID == "" {
		return domain.Invalid(domain.ErrClaimAccountRequired, "item %s", item.ItemID)
	}

	status, err := uc.directory.Lookup(ctx, item.ClaimAccountID, domain.AccountTypeAccount)
	if err != nil {
		return err
	}

	if !status.Exists {
		return fmt.Errorf("%w: claim account %s", domain.ErrAccountNotFound, item.ClaimAccountID)
	}

	if !status.IsActive {
		return fmt.Errorf("%w: claim account %s", domain.ErrAccountInactive, item.ClaimAccountID)
	}

	if !status.CanBeUsedForClaims {
		return fmt.Errorf("%w: %s", domain.ErrClaimAccountNotEligible, item.ClaimAccountID)
	}

	return nil
}

// ConfirmInvoiceInput represents a confirm/post action.
type ConfirmInvoiceInput struct {
	InvoiceID              string
	CustomerAccount        domain.AccountRef
	RevenueAccount         domain.AccountRef
	Items                  []domain.LineItem
	InvoiceDiscountPercent decimal.Decimal
	CreatedBy              string
}

// ConfirmedInvoice pairs the computed totals with the posted entries.
type ConfirmedInvoice struct {
	Totals *domain.InvoiceTotals
	Posted *DoubleEntry
}

// ConfirmInvoice recomputes totals and posts the grand total as a double
// entry: debit the customer, credit revenue, referenced by the invoice.
func (uc *InvoiceUseCase) ConfirmInvoice(ctx context.Context, input ConfirmInvoiceInput) (*ConfirmedInvoice, error) {
	if input.InvoiceID == "" {
		return nil, domain.Invalid(domain.ErrMissingReference, "invoice id is required")
	}

	totals, err := uc.CalculateInvoice(ctx, CalculateInvoiceInput{
		Items:                  input.Items,
		InvoiceDiscountPercent: input.InvoiceDiscountPercent,
	})
	if err != nil {
		return nil, err
	}

	posted, err := uc.ledger.CreateDoubleEntry(ctx, CreateDoubleEntryInput{
		DebitAccount:  input.CustomerAccount,
		CreditAccount: input.RevenueAccount,
		Amount:        totals.GrandTotal,
		Description:   "Invoice " + input.InvoiceID,
		ReferenceType: domain.ReferenceTypeInvoice,
		ReferenceID:   input.InvoiceID,
		CreatedBy:     input.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoiceConfirmations.Inc()
	}

	return &ConfirmedInvoice{Totals: totals, Posted: posted}, nil
}

// CancelInvoice reverses the ledger entries of a previously confirmed
// invoice.
func (uc *InvoiceUseCase) CancelInvoice(ctx context.Context, invoiceID, reason, createdBy string) ([]*domain.LedgerEntry, error) {
	reversals, err := uc.ledger.ReverseEntries(ctx, ReverseEntriesInput{
		ReferenceType: domain.ReferenceTypeInvoice,
		ReferenceID:   invoiceID,
		Reason:        reason,
		CreatedBy:     createdBy,
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoiceCancellations.Inc()
	}

	return reversals, nil
}
