package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

func newTestRetrier() *Retrier {
	r := NewRetrier()
	r.maxRetries = 2
	r.initialInterval = 1 * time.Millisecond
	r.maxInterval = 2 * time.Millisecond
	r.maxElapsedTime = 1 * time.Second
	return r
}

func TestLedgerEntryRepositorySumByAccountRetriesSerializationFailure(t *testing.T) {
	mockPool := newMockPool(t)
	asOf := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	mockPool.ExpectQuery("FROM ledger_entries").
		WithArgs("cust-1", timeToPgTimestamptz(asOf)).
		WillReturnError(&pgconn.PgError{Code: pgErrSerializationFailure})
	mockPool.ExpectQuery("FROM ledger_entries").
		WithArgs("cust-1", timeToPgTimestamptz(asOf)).
		WillReturnRows(pgxmock.NewRows([]string{"debits", "credits"}).
			AddRow(decimalToNumeric(decimal.NewFromInt(100)), decimalToNumeric(decimal.NewFromInt(40))))

	repo := newLedgerEntryRepositoryWithPool(mockPool, newTestRetrier())

	debits, credits, err := repo.SumByAccount(context.Background(), "cust-1", asOf)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}

	if !debits.Equal(decimal.NewFromInt(100)) || !credits.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected totals: debits %s credits %s", debits, credits)
	}

	assertExpectations(t, mockPool)
}

func TestLedgerEntryRepositorySumByAccountDoesNotRetryPermanentError(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectQuery("FROM ledger_entries").
		WithArgs("cust-1", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := newLedgerEntryRepositoryWithPool(mockPool, newTestRetrier())

	_, _, err := repo.SumByAccount(context.Background(), "cust-1", time.Now().UTC())

	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		t.Fatalf("expected unique violation to surface unchanged, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestLedgerEntryRepositoryGetByReferenceRetriesDeadlock(t *testing.T) {
	mockPool := newMockPool(t)
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	columns := []string{
		"id", "account_id", "account_type", "transaction_type", "amount", "description",
		"reference_type", "reference_id", "transaction_date", "currency", "exchange_rate",
		"created_by", "created_at",
	}

	mockPool.ExpectQuery("FROM ledger_entries").
		WithArgs("invoice", "INV-001").
		WillReturnError(&pgconn.PgError{Code: pgErrDeadlock})
	mockPool.ExpectQuery("FROM ledger_entries").
		WithArgs("invoice", "INV-001").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow(
				"entry-1", "cust-1", "customer", "debit",
				decimalToNumeric(decimal.NewFromInt(500)), "Invoice INV-001",
				"invoice", "INV-001", timeToPgTimestamptz(now), "PKR",
				decimalToNumeric(decimal.NewFromInt(1)), "user-1", timeToPgTimestamptz(now),
			))

	repo := newLedgerEntryRepositoryWithPool(mockPool, newTestRetrier())

	entries, err := repo.GetByReference(context.Background(), "invoice", "INV-001")
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.ID != "entry-1" || entry.AccountID != "cust-1" {
		t.Errorf("unexpected entry identity: %s / %s", entry.ID, entry.AccountID)
	}
	if !entry.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("unexpected amount: %s", entry.Amount)
	}
	if !entry.TransactionDate.Equal(now) {
		t.Errorf("unexpected transaction date: %s", entry.TransactionDate)
	}

	assertExpectations(t, mockPool)
}
