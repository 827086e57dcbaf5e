package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/usecase"
)

const entryColumns = `id, account_id, account_type, transaction_type, amount, description,
	reference_type, reference_id, transaction_date, currency, exchange_rate, created_by, created_at`

// querier is the pool surface the repositories use.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LedgerEntryRepository implements usecase.LedgerEntryRepository. Read
// queries are single statements and go through the retrier, so transient
// deadlock and serialization failures are retried.
type LedgerEntryRepository struct {
	pool    querier
	retrier *Retrier
}

// NewLedgerEntryRepository creates a new LedgerEntryRepository.
func NewLedgerEntryRepository(pool *pgxpool.Pool, retrier *Retrier) *LedgerEntryRepository {
	return newLedgerEntryRepositoryWithPool(pool, retrier)
}

func newLedgerEntryRepositoryWithPool(pool querier, retrier *Retrier) *LedgerEntryRepository {
	if retrier == nil {
		retrier = NewRetrier()
	}

	return &LedgerEntryRepository{pool: pool, retrier: retrier}
}

// Create inserts an entry inside the caller's transaction. Entries are
// append-only; there is no update path.
func (r *LedgerEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, `
		INSERT INTO ledger_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		entry.ID,
		entry.AccountID,
		string(entry.AccountType),
		string(entry.TransactionType),
		decimalToNumeric(entry.Amount),
		entry.Description,
		entry.ReferenceType,
		entry.ReferenceID,
		timeToPgTimestamptz(entry.TransactionDate),
		entry.Currency,
		decimalToNumeric(entry.ExchangeRate),
		entry.CreatedBy,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByReference retrieves all entries posted for a document, in posting
// order.
func (r *LedgerEntryRepository) GetByReference(ctx context.Context, referenceType, referenceID string) ([]*domain.LedgerEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at, id`,
		referenceType, referenceID,
	)
}

// GetByAccount retrieves an account's entries dated after start and at or
// before end.
func (r *LedgerEntryRepository) GetByAccount(ctx context.Context, accountID string, start, end time.Time) ([]*domain.LedgerEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM ledger_entries
		WHERE account_id = $1 AND transaction_date > $2 AND transaction_date <= $3
		ORDER BY transaction_date, created_at, id`,
		accountID, timeToPgTimestamptz(start), timeToPgTimestamptz(end),
	)
}

func (r *LedgerEntryRepository) queryEntries(ctx context.Context, sql string, args ...any) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries, err = scanEntries(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// SumByAccount returns the account's debit and credit totals over entries
// dated at or before asOf.
func (r *LedgerEntryRepository) SumByAccount(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var debits, credits pgtype.Numeric

	err := r.retrier.Retry(ctx, func() error {
		return r.pool.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'debit'), 0),
				COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'credit'), 0)
			FROM ledger_entries
			WHERE account_id = $1 AND transaction_date <= $2`,
			accountID, timeToPgTimestamptz(asOf),
		).Scan(&debits, &credits)
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}

// AccountTotals returns per-account debit and credit totals over entries
// dated at or before asOf, for the trial balance.
func (r *LedgerEntryRepository) AccountTotals(ctx context.Context, asOf time.Time) ([]domain.AccountTotals, error) {
	var totals []domain.AccountTotals

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT
				account_id,
				account_type,
				COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'debit'), 0),
				COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'credit'), 0)
			FROM ledger_entries
			WHERE transaction_date <= $1
			GROUP BY account_id, account_type
			ORDER BY account_id`,
			timeToPgTimestamptz(asOf),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		totals = nil
		for rows.Next() {
			var (
				row             domain.AccountTotals
				accountType     string
				debits, credits pgtype.Numeric
			)
			if err := rows.Scan(&row.AccountID, &accountType, &debits, &credits); err != nil {
				return err
			}
			row.AccountType = domain.AccountType(accountType)
			row.DebitTotal = numericToDecimal(debits)
			row.CreditTotal = numericToDecimal(credits)
			totals = append(totals, row)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// DeleteByReference hard-deletes all entries of a reference and reports
// how many were removed.
func (r *LedgerEntryRepository) DeleteByReference(ctx context.Context, referenceType, referenceID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM ledger_entries
		WHERE reference_type = $1 AND reference_id = $2`,
		referenceType, referenceID,
	)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func scanEntries(rows pgx.Rows) ([]*domain.LedgerEntry, error) {
	var entries []*domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		entry                        domain.LedgerEntry
		accountType, transactionType string
		amount, exchangeRate         pgtype.Numeric
		transactionDate, createdAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.AccountID,
		&accountType,
		&transactionType,
		&amount,
		&entry.Description,
		&entry.ReferenceType,
		&entry.ReferenceID,
		&transactionDate,
		&entry.Currency,
		&exchangeRate,
		&entry.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.AccountType = domain.AccountType(accountType)
	entry.TransactionType = domain.TransactionType(transactionType)
	entry.Amount = numericToDecimal(amount)
	entry.ExchangeRate = numericToDecimal(exchangeRate)
	entry.TransactionDate = transactionDate.Time
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
