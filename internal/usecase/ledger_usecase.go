package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/infrastructure/metrics"
)

// LedgerUseCase owns double-entry creation and reversal. Every economic
// event becomes exactly one debit and one credit of equal amount, written
// atomically: either both entries exist or neither does.
type LedgerUseCase struct {
	txManager       TransactionManager
	entryRepo       LedgerEntryRepository
	directory       AccountDirectory
	idGen           IDGenerator
	defaultCurrency string
	metrics         *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase. An empty defaultCurrency
// falls back to DefaultCurrency; metrics may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	entryRepo LedgerEntryRepository,
	directory AccountDirectory,
	idGen IDGenerator,
	defaultCurrency string,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}

	return &LedgerUseCase{
		txManager:       txManager,
		entryRepo:       entryRepo,
		directory:       directory,
		idGen:           idGen,
		defaultCurrency: defaultCurrency,
		metrics:         metrics,
	}
}

// CreateDoubleEntryInput represents input for posting a double entry.
type CreateDoubleEntryInput struct {
	DebitAccount    domain.AccountRef
	CreditAccount   domain.AccountRef
	Amount          decimal.Decimal
	Description     string
	ReferenceType   string
	ReferenceID     string
	Currency        string
	ExchangeRate    decimal.Decimal
	TransactionDate *time.Time
	CreatedBy       string
}

// DoubleEntry is the balanced pair a posting produces.
type DoubleEntry struct {
	Debit  *domain.LedgerEntry
	Credit *domain.LedgerEntry
}

// CreateDoubleEntry validates both accounts against the directory and
// writes the debit and credit entries inside one transaction.
func (uc *LedgerUseCase) CreateDoubleEntry(ctx context.Context, input CreateDoubleEntryInput) (*DoubleEntry, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if input.Description == "" {
		return nil, domain.ErrMissingDescription
	}

	if input.ReferenceType == "" {
		return nil, domain.ErrMissingReference
	}

	if input.CreatedBy == "" {
		return nil, domain.ErrMissingCreatedBy
	}

	if err := input.DebitAccount.Validate(); err != nil {
		return nil, err
	}

	if err := input.CreditAccount.Validate(); err != nil {
		return nil, err
	}

	if err := uc.validateAccount(ctx, input.DebitAccount); err != nil {
		return nil, err
	}

	if err := uc.validateAccount(ctx, input.CreditAccount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	transactionDate := now
	if input.TransactionDate != nil {
		transactionDate = input.TransactionDate.UTC()
	}

	currency := input.Currency
	if currency == "" {
		currency = uc.defaultCurrency
	}

	exchangeRate := input.ExchangeRate
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}

	debit := uc.buildEntry(input, input.DebitAccount, domain.TransactionDebit, currency, exchangeRate, transactionDate, now)
	credit := uc.buildEntry(input, input.CreditAccount, domain.TransactionCredit, currency, exchangeRate, transactionDate, now)

	if err := debit.Validate(); err != nil {
		return nil, err
	}

	if err := credit.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
		uc.recordPostingError("storage")
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, credit); err != nil {
		uc.recordPostingError("storage")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		uc.recordPostingError("commit")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesPosted.Inc()
		uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
	}

	return &DoubleEntry{Debit: debit, Credit: credit}, nil
}

func (uc *LedgerUseCase) recordPostingError(errorType string) {
	if uc.metrics != nil {
		uc.metrics.PostingErrors.WithLabelValues(errorType).Inc()
	}
}

func (uc *LedgerUseCase) buildEntry(
	input CreateDoubleEntryInput,
	account domain.AccountRef,
	side domain.TransactionType,
	currency string,
	exchangeRate decimal.Decimal,
	transactionDate, now time.Time,
) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:              uc.idGen.Generate(),
		AccountID:       account.AccountID,
		AccountType:     account.AccountType,
		TransactionType: side,
		Amount:          input.Amount,
		Description:     input.Description,
		ReferenceType:   input.ReferenceType,
		ReferenceID:     input.ReferenceID,
		TransactionDate: transactionDate,
		Currency:        currency,
		ExchangeRate:    exchangeRate,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       now,
	}
}

// validateAccount checks the account with its directory. User accounts are
// internal and accepted without a lookup.
func (uc *LedgerUseCase) validateAccount(ctx context.Context, ref domain.AccountRef) error {
	if !ref.AccountType.RequiresDirectoryLookup() {
		return nil
	}

	status, err := uc.directory.Lookup(ctx, ref.AccountID, ref.AccountType)
	if err != nil {
		return err
	}

	if !status.Exists {
		return fmt.Errorf("%w: %s %s", domain.ErrAccountNotFound, ref.AccountType, ref.AccountID)
	}

	if !status.IsActive {
		return fmt.Errorf("%w: %s %s", domain.ErrAccountInactive, ref.AccountType, ref.AccountID)
	}

	return nil
}

// ReverseEntriesInput represents input for reversing a posted reference.
type ReverseEntriesInput struct {
	ReferenceType string
	ReferenceID   string
	Reason        string
	CreatedBy     string
}

// ReverseEntries creates one opposite-side entry per original entry of the
// reference. The reversal is balanced only because it mirrors a
// previously balanced pair, so it must only be applied to references
// posted in full through CreateDoubleEntry.
func (uc *LedgerUseCase) ReverseEntries(ctx context.Context, input ReverseEntriesInput) ([]*domain.LedgerEntry, error) {
	if input.ReferenceType == "" || input.ReferenceID == "" {
		return nil, domain.ErrMissingReference
	}

	if input.Reason == "" {
		return nil, domain.Invalid(domain.ErrMissingDescription, "reversal reason is required")
	}

	if input.CreatedBy == "" {
		return nil, domain.ErrMissingCreatedBy
	}

	originals, err := uc.entryRepo.GetByReference(ctx, input.ReferenceType, input.ReferenceID)
	if err != nil {
		return nil, err
	}

	if len(originals) == 0 {
		return nil, domain.ErrEntriesNotFound
	}

	now := time.Now().UTC()

	reversals := make([]*domain.LedgerEntry, 0, len(originals))
	for _, original := range originals {
		reversals = append(reversals, &domain.LedgerEntry{
			ID:              uc.idGen.Generate(),
			AccountID:       original.AccountID,
			AccountType:     original.AccountType,
			TransactionType: original.TransactionType.Opposite(),
			Amount:          original.Amount,
			Description:     input.Reason + ": " + original.Description,
			ReferenceType:   domain.ReferenceTypeAdjustment,
			ReferenceID:     original.ID,
			TransactionDate: now,
			Currency:        original.Currency,
			ExchangeRate:    original.ExchangeRate,
			CreatedBy:       input.CreatedBy,
			CreatedAt:       now,
		})
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	for _, reversal := range reversals {
		if err := uc.entryRepo.Create(ctx, tx, reversal); err != nil {
			uc.recordPostingError("storage")
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		uc.recordPostingError("commit")
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesReversed.Add(float64(len(reversals)))
	}

	return reversals, nil
}

// GetByReference lists the entries posted for a document.
func (uc *LedgerUseCase) GetByReference(ctx context.Context, referenceType, referenceID string) ([]*domain.LedgerEntry, error) {
	entries, err := uc.entryRepo.GetByReference(ctx, referenceType, referenceID)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, domain.ErrEntriesNotFound
	}

	return entries, nil
}

// DeleteByReference hard-deletes all entries of a reference. This is an
// administrative escape hatch tied to deleting the owning document, not
// part of normal operation; corrections go through ReverseEntries.
func (uc *LedgerUseCase) DeleteByReference(ctx context.Context, referenceType, referenceID string) (int64, error) {
	if referenceType == "" || referenceID == "" {
		return 0, domain.ErrMissingReference
	}

	deleted, err := uc.entryRepo.DeleteByReference(ctx, referenceType, referenceID)
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesDeleted.Add(float64(deleted))
	}

	return deleted, nil
}
