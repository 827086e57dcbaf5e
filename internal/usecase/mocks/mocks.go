package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// MockLedgerEntryRepository is an in-memory LedgerEntryRepository. Set a
// *Func field to override a method for a specific test.
type MockLedgerEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	GetByReferenceFunc    func(ctx context.Context, referenceType, referenceID string) ([]*domain.LedgerEntry, error)
	GetByAccountFunc      func(ctx context.Context, accountID string, start, end time.Time) ([]*domain.LedgerEntry, error)
	SumByAccountFunc      func(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error)
	AccountTotalsFunc     func(ctx context.Context, asOf time.Time) ([]domain.AccountTotals, error)
	DeleteByReferenceFunc func(ctx context.Context, referenceType, referenceID string) (int64, error)
}

func NewMockLedgerEntryRepository() *MockLedgerEntryRepository {
	return &MockLedgerEntryRepository{}
}

func (m *MockLedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLedgerEntryRepository) GetByReference(ctx context.Context, referenceType, referenceID string) ([]*domain.LedgerEntry, error) {
	if m.GetByReferenceFunc != nil {
		return m.GetByReferenceFunc(ctx, referenceType, referenceID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.ReferenceType == referenceType && e.ReferenceID == referenceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockLedgerEntryRepository) GetByAccount(ctx context.Context, accountID string, start, end time.Time) ([]*domain.LedgerEntry, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, start, end)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.AccountID != accountID {
			continue
		}
		if e.TransactionDate.After(start) && !e.TransactionDate.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockLedgerEntryRepository) SumByAccount(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, accountID, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range m.entries {
		if e.AccountID != accountID || e.TransactionDate.After(asOf) {
			continue
		}
		if e.TransactionType == domain.TransactionDebit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits, nil
}

func (m *MockLedgerEntryRepository) AccountTotals(ctx context.Context, asOf time.Time) ([]domain.AccountTotals, error) {
	if m.AccountTotalsFunc != nil {
		return m.AccountTotalsFunc(ctx, asOf)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	totals := make(map[string]*domain.AccountTotals)
	var order []string
	for _, e := range m.entries {
		if e.TransactionDate.After(asOf) {
			continue
		}
		row, ok := totals[e.AccountID]
		if !ok {
			row = &domain.AccountTotals{
				AccountID:   e.AccountID,
				AccountType: e.AccountType,
				DebitTotal:  decimal.Zero,
				CreditTotal: decimal.Zero,
			}
			totals[e.AccountID] = row
			order = append(order, e.AccountID)
		}
		if e.TransactionType == domain.TransactionDebit {
			row.DebitTotal = row.DebitTotal.Add(e.Amount)
		} else {
			row.CreditTotal = row.CreditTotal.Add(e.Amount)
		}
	}
	out := make([]domain.AccountTotals, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	return out, nil
}

func (m *MockLedgerEntryRepository) DeleteByReference(ctx context.Context, referenceType, referenceID string) (int64, error) {
	if m.DeleteByReferenceFunc != nil {
		return m.DeleteByReferenceFunc(ctx, referenceType, referenceID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*domain.LedgerEntry
	var deleted int64
	for _, e := range m.entries {
		if e.ReferenceType == referenceType && e.ReferenceID == referenceID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return deleted, nil
}

// Entries returns a copy of the stored entries.
func (m *MockLedgerEntryRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockInvoiceRepository is an in-memory InvoiceRepository.
type MockInvoiceRepository struct {
	Receivables []domain.OutstandingInvoice
	Payables    []domain.OutstandingInvoice
	Summaries   []domain.InvoiceSummary
	TaxLines    []domain.TaxLine

	GetOutstandingReceivablesFunc func(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error)
	GetOutstandingPayablesFunc    func(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error)
	GetByAccountFunc              func(ctx context.Context, accountID string, start, end time.Time) ([]domain.InvoiceSummary, error)
	GetTaxLinesFunc               func(ctx context.Context, start, end time.Time) ([]domain.TaxLine, error)
}

func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{}
}

func (m *MockInvoiceRepository) GetOutstandingReceivables(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error) {
	if m.GetOutstandingReceivablesFunc != nil {
		return m.GetOutstandingReceivablesFunc(ctx, asOf)
	}
	return m.Receivables, nil
}

func (m *MockInvoiceRepository) GetOutstandingPayables(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error) {
	if m.GetOutstandingPayablesFunc != nil {
		return m.GetOutstandingPayablesFunc(ctx, asOf)
	}
	return m.Payables, nil
}

func (m *MockInvoiceRepository) GetByAccount(ctx context.Context, accountID string, start, end time.Time) ([]domain.InvoiceSummary, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, start, end)
	}
	return m.Summaries, nil
}

func (m *MockInvoiceRepository) GetTaxLines(ctx context.Context, start, end time.Time) ([]domain.TaxLine, error) {
	if m.GetTaxLinesFunc != nil {
		return m.GetTaxLinesFunc(ctx, start, end)
	}
	return m.TaxLines, nil
}

// MockDirectory is a map-backed AccountDirectory.
type MockDirectory struct {
	Accounts map[string]usecase.AccountStatus

	LookupFunc func(ctx context.Context, accountID string, accountType domain.AccountType) (usecase.AccountStatus, error)
}

func NewMockDirectory() *MockDirectory {
	return &MockDirectory{Accounts: make(map[string]usecase.AccountStatus)}
}

func (m *MockDirectory) Lookup(ctx context.Context, accountID string, accountType domain.AccountType) (usecase.AccountStatus, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, accountID, accountType)
	}
	status, ok := m.Accounts[accountID]
	if !ok {
		return usecase.AccountStatus{}, nil
	}
	return status, nil
}

// MockTransaction records commit/rollback calls.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions and keeps them for
// later inspection.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator returns sequential IDs unless overridden.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}

// ErrCacheMiss is returned by MockCache.Get for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// MockCache is a map-backed Cache.
type MockCache struct {
	mu     sync.RWMutex
	values map[string][]byte

	GetFunc func(ctx context.Context, key string) ([]byte, error)
	SetFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{values: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
