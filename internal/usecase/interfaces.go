package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
)

// AccountStatus is the directory's view of an account.
type AccountStatus struct {
	Exists             bool
	IsActive           bool
	CanBeUsedForClaims bool
}

// AccountDirectory resolves account existence and status for the account
// kinds the ledger validates. User-typed accounts bypass the directory.
type AccountDirectory interface {
	Lookup(ctx context.Context, accountID string, accountType domain.AccountType) (AccountStatus, error)
}

// LedgerEntryRepository defines data access for ledger entries. Entries
// are append-only; there is no update.
type LedgerEntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByReference(ctx context.Context, referenceType, referenceID string) ([]*domain.LedgerEntry, error)
	// GetByAccount returns entries in the window (start, end], ordered
	// chronologically.
	GetByAccount(ctx context.Context, accountID string, start, end time.Time) ([]*domain.LedgerEntry, error)
	// SumByAccount returns debit and credit totals for entries dated at or
	// before asOf.
	SumByAccount(ctx context.Context, accountID string, asOf time.Time) (debits, credits decimal.Decimal, err error)
	AccountTotals(ctx context.Context, asOf time.Time) ([]domain.AccountTotals, error)
	DeleteByReference(ctx context.Context, referenceType, referenceID string) (int64, error)
}

// InvoiceRepository defines the read-side access the reports need over
// persisted invoices and their tax lines.
type InvoiceRepository interface {
	GetOutstandingReceivables(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error)
	GetOutstandingPayables(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error)
	GetByAccount(ctx context.Context, accountID string, start, end time.Time) ([]domain.InvoiceSummary, error)
	GetTaxLines(ctx context.Context, start, end time.Time) ([]domain.TaxLine, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations for derived read-side values. Cached
// balances are an optimization only; recomputation from the entry log
// stays the source of truth.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage for posting operations.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
