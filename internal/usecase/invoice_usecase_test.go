package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/usecase"
	"github.com/pharmaops/erpledger/internal/usecase/mocks"
)

type invoiceFixture struct {
	uc        *usecase.InvoiceUseCase
	txManager *mocks.MockTransactionManager
	entryRepo *mocks.MockLedgerEntryRepository
	directory *mocks.MockDirectory
}

func newInvoiceFixture() *invoiceFixture {
	txManager := mocks.NewMockTransactionManager()
	entryRepo := mocks.NewMockLedgerEntryRepository()
	directory := mocks.NewMockDirectory()
	directory.Accounts["cust-1"] = usecase.AccountStatus{Exists: true, IsActive: true}
	directory.Accounts["rev-1"] = usecase.AccountStatus{Exists: true, IsActive: true}
	directory.Accounts["claim-1"] = usecase.AccountStatus{Exists: true, IsActive: true, CanBeUsedForClaims: true}

	ledger := usecase.NewLedgerUseCase(txManager, entryRepo, directory, mocks.NewMockIDGenerator(), "", nil)

	return &invoiceFixture{
		uc:        usecase.NewInvoiceUseCase(directory, ledger, nil),
		txManager: txManager,
		entryRepo: entryRepo,
		directory: directory,
	}
}

func standardItem() domain.LineItem {
	return domain.LineItem{
		ItemID:           "item-1",
		Quantity:         decimal.NewFromInt(10),
		UnitPrice:        decimal.NewFromInt(100),
		Discount1Percent: decimal.NewFromInt(10),
		GSTRate:          decimal.NewFromInt(17),
		WHTRate:          decimal.NewFromInt(1),
	}
}

func TestInvoiceUseCase_CalculateInvoice(t *testing.T) {
	f := newInvoiceFixture()

	totals, err := f.uc.CalculateInvoice(context.Background(), usecase.CalculateInvoiceInput{
		Items: []domain.LineItem{standardItem()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000 - 100 discount = 900 taxable; GST 153, WHT 9, net tax 144.
	if !totals.Subtotal.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("subtotal = %s, want 1000", totals.Subtotal)
	}
	if !totals.TaxableAmount.Equal(decimal.NewFromInt(900)) {
		t.Errorf("taxable = %s, want 900", totals.TaxableAmount)
	}
	if !totals.TotalTax.Equal(decimal.NewFromInt(144)) {
		t.Errorf("total tax = %s, want 144", totals.TotalTax)
	}
	if !totals.GrandTotal.Equal(decimal.NewFromInt(1044)) {
		t.Errorf("grand total = %s, want 1044", totals.GrandTotal)
	}
}

func TestInvoiceUseCase_CalculateInvoice_ClaimAccount(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.LineItem)
		wantErr error
	}{
		{
			name: "zero second discount needs no claim account",
			mutate: func(item *domain.LineItem) {
				item.Discount2Percent = decimal.Zero
			},
		},
		{
			name: "smallest second discount requires a claim account",
			mutate: func(item *domain.LineItem) {
				item.Discount2Percent = decimal.NewFromFloat(0.01)
			},
			wantErr: domain.ErrClaimAccountRequired,
		},
		{
			name: "second discount as amount requires a claim account",
			mutate: func(item *domain.LineItem) {
				item.Discount2Amount = decimal.NewFromInt(5)
			},
			wantErr: domain.ErrClaimAccountRequired,
		},
		{
			name: "valid claim account accepted",
			mutate: func(item *domain.LineItem) {
				item.Discount2Percent = decimal.NewFromInt(5)
				item.ClaimAccountID = "claim-1"
			},
		},
		{
			name: "unknown claim account",
			mutate: func(item *domain.LineItem) {
				item.Discount2Percent = decimal.NewFromInt(5)
				item.ClaimAccountID = "claim-missing"
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInvoiceFixture()
			item := standardItem()
			tt.mutate(&item)

			_, err := f.uc.CalculateInvoice(context.Background(), usecase.CalculateInvoiceInput{
				Items: []domain.LineItem{item},
			})
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInvoiceUseCase_CalculateInvoice_ClaimAccountStatus(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		f := newInvoiceFixture()
		f.directory.Accounts["claim-1"] = usecase.AccountStatus{Exists: true, IsActive: false, CanBeUsedForClaims: true}

		item := standardItem()
		item.Discount2Percent = decimal.NewFromInt(5)
		item.ClaimAccountID = "claim-1"

		_, err := f.uc.CalculateInvoice(context.Background(), usecase.CalculateInvoiceInput{Items: []domain.LineItem{item}})
		if !errors.Is(err, domain.ErrAccountInactive) {
			t.Fatalf("expected ErrAccountInactive, got %v", err)
		}
	})

	t.Run("not claims eligible", func(t *testing.T) {
		f := newInvoiceFixture()
		f.directory.Accounts["claim-1"] = usecase.AccountStatus{Exists: true, IsActive: true, CanBeUsedForClaims: false}

		item := standardItem()
		item.Discount2Percent = decimal.NewFromInt(5)
		item.ClaimAccountID = "claim-1"

		_, err := f.uc.CalculateInvoice(context.Background(), usecase.CalculateInvoiceInput{Items: []domain.LineItem{item}})
		if !errors.Is(err, domain.ErrClaimAccountNotEligible) {
			t.Fatalf("expected ErrClaimAccountNotEligible, got %v", err)
		}
	})
}

func TestInvoiceUseCase_CalculateInvoice_RejectsBadItem(t *testing.T) {
	f := newInvoiceFixture()

	item := standardItem()
	item.Quantity = decimal.Zero

	_, err := f.uc.CalculateInvoice(context.Background(), usecase.CalculateInvoiceInput{
		Items: []domain.LineItem{standardItem(), item},
	})
	if !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestInvoiceUseCase_ConfirmInvoice(t *testing.T) {
	f := newInvoiceFixture()

	confirmed, err := f.uc.ConfirmInvoice(context.Background(), usecase.ConfirmInvoiceInput{
		InvoiceID:       "INV-001",
		CustomerAccount: domain.AccountRef{AccountID: "cust-1", AccountType: domain.AccountTypeCustomer},
		RevenueAccount:  domain.AccountRef{AccountID: "rev-1", AccountType: domain.AccountTypeAccount},
		Items:           []domain.LineItem{standardItem()},
		CreatedBy:       "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !confirmed.Totals.GrandTotal.Equal(decimal.NewFromInt(1044)) {
		t.Errorf("grand total = %s, want 1044", confirmed.Totals.GrandTotal)
	}

	debit, credit := confirmed.Posted.Debit, confirmed.Posted.Credit
	if debit.AccountID != "cust-1" || debit.TransactionType != domain.TransactionDebit {
		t.Errorf("debit leg on %s %s", debit.AccountID, debit.TransactionType)
	}
	if credit.AccountID != "rev-1" || credit.TransactionType != domain.TransactionCredit {
		t.Errorf("credit leg on %s %s", credit.AccountID, credit.TransactionType)
	}
	if !debit.Amount.Equal(confirmed.Totals.GrandTotal) {
		t.Errorf("posted amount %s != grand total %s", debit.Amount, confirmed.Totals.GrandTotal)
	}
	if debit.ReferenceType != domain.ReferenceTypeInvoice || debit.ReferenceID != "INV-001" {
		t.Errorf("reference %s/%s, want invoice/INV-001", debit.ReferenceType, debit.ReferenceID)
	}
	if debit.Description != "Invoice INV-001" {
		t.Errorf("description %q", debit.Description)
	}
}

func TestInvoiceUseCase_ConfirmInvoice_MissingID(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.ConfirmInvoice(context.Background(), usecase.ConfirmInvoiceInput{
		CustomerAccount: domain.AccountRef{AccountID: "cust-1", AccountType: domain.AccountTypeCustomer},
		RevenueAccount:  domain.AccountRef{AccountID: "rev-1", AccountType: domain.AccountTypeAccount},
		Items:           []domain.LineItem{standardItem()},
		CreatedBy:       "user-1",
	})
	if !errors.Is(err, domain.ErrMissingReference) {
		t.Fatalf("expected ErrMissingReference, got %v", err)
	}
}

func TestInvoiceUseCase_CancelInvoice(t *testing.T) {
	f := newInvoiceFixture()

	_, err := f.uc.ConfirmInvoice(context.Background(), usecase.ConfirmInvoiceInput{
		InvoiceID:       "INV-001",
		CustomerAccount: domain.AccountRef{AccountID: "cust-1", AccountType: domain.AccountTypeCustomer},
		RevenueAccount:  domain.AccountRef{AccountID: "rev-1", AccountType: domain.AccountTypeAccount},
		Items:           []domain.LineItem{standardItem()},
		CreatedBy:       "user-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversals, err := f.uc.CancelInvoice(context.Background(), "INV-001", "Customer returned order", "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reversals) != 2 {
		t.Fatalf("expected 2 reversal entries, got %d", len(reversals))
	}

	_, err = f.uc.CancelInvoice(context.Background(), "INV-404", "No such invoice", "user-2")
	if !errors.Is(err, domain.ErrEntriesNotFound) {
		t.Fatalf("expected ErrEntriesNotFound, got %v", err)
	}
}
