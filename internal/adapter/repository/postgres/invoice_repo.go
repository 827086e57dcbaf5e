package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmaops/erpledger/internal/domain"
)

// InvoiceRepository implements usecase.InvoiceRepository over persisted
// invoice headers and lines. Reporting reads stored amounts; it never
// recalculates them. All queries here are reads and go through the
// retrier.
type InvoiceRepository struct {
	pool    querier
	retrier *Retrier
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(pool *pgxpool.Pool, retrier *Retrier) *InvoiceRepository {
	return newInvoiceRepositoryWithPool(pool, retrier)
}

func newInvoiceRepositoryWithPool(pool querier, retrier *Retrier) *InvoiceRepository {
	if retrier == nil {
		retrier = NewRetrier()
	}

	return &InvoiceRepository{pool: pool, retrier: retrier}
}

// GetOutstandingReceivables lists unpaid sales invoices as of a date.
func (r *InvoiceRepository) GetOutstandingReceivables(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error) {
	return r.outstanding(ctx, "sales", asOf)
}

// GetOutstandingPayables lists unpaid purchase invoices as of a date.
func (r *InvoiceRepository) GetOutstandingPayables(ctx context.Context, asOf time.Time) ([]domain.OutstandingInvoice, error) {
	return r.outstanding(ctx, "purchase", asOf)
}

func (r *InvoiceRepository) outstanding(ctx context.Context, kind string, asOf time.Time) ([]domain.OutstandingInvoice, error) {
	var invoices []domain.OutstandingInvoice

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT id, invoice_number, account_id, due_date, grand_total - amount_paid
			FROM invoices
			WHERE kind = $1
			  AND status = 'confirmed'
			  AND invoice_date <= $2
			  AND grand_total > amount_paid
			ORDER BY account_id, due_date`,
			kind, timeToPgTimestamptz(asOf),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		invoices = nil
		for rows.Next() {
			var (
				inv         domain.OutstandingInvoice
				dueDate     pgtype.Timestamptz
				outstanding pgtype.Numeric
			)
			if err := rows.Scan(&inv.InvoiceID, &inv.InvoiceNumber, &inv.AccountID, &dueDate, &outstanding); err != nil {
				return err
			}
			inv.DueDate = dueDate.Time
			inv.Outstanding = numericToDecimal(outstanding)
			invoices = append(invoices, inv)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

// GetByAccount lists an account's invoices dated after start and at or
// before end, for statement interleaving.
func (r *InvoiceRepository) GetByAccount(ctx context.Context, accountID string, start, end time.Time) ([]domain.InvoiceSummary, error) {
	var summaries []domain.InvoiceSummary

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT id, invoice_number, account_id, invoice_date, due_date, grand_total, status
			FROM invoices
			WHERE account_id = $1 AND invoice_date > $2 AND invoice_date <= $3
			ORDER BY invoice_date, id`,
			accountID, timeToPgTimestamptz(start), timeToPgTimestamptz(end),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		summaries = nil
		for rows.Next() {
			var (
				s                    domain.InvoiceSummary
				invoiceDate, dueDate pgtype.Timestamptz
				grandTotal           pgtype.Numeric
			)
			if err := rows.Scan(&s.InvoiceID, &s.InvoiceNumber, &s.AccountID, &invoiceDate, &dueDate, &grandTotal, &s.Status); err != nil {
				return err
			}
			s.InvoiceDate = invoiceDate.Time
			s.DueDate = dueDate.Time
			s.GrandTotal = numericToDecimal(grandTotal)
			summaries = append(summaries, s)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

// GetTaxLines lists per-line tax fields of confirmed invoices in the
// window, for the tax report.
func (r *InvoiceRepository) GetTaxLines(ctx context.Context, start, end time.Time) ([]domain.TaxLine, error) {
	var lines []domain.TaxLine

	err := r.retrier.Retry(ctx, func() error {
		rows, err := r.pool.Query(ctx, `
			SELECT i.id, i.account_id, l.taxable_amount, l.gst_rate, l.gst_amount,
			       l.wht_amount, l.advance_tax_rate, l.advance_tax_amount, l.non_filer
			FROM invoice_lines l
			JOIN invoices i ON i.id = l.invoice_id
			WHERE i.status = 'confirmed' AND i.invoice_date > $1 AND i.invoice_date <= $2
			ORDER BY i.invoice_date, i.id, l.line_no`,
			timeToPgTimestamptz(start), timeToPgTimestamptz(end),
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		lines = nil
		for rows.Next() {
			var (
				line                                 domain.TaxLine
				taxable, gstRate, gstAmount          pgtype.Numeric
				whtAmount, advanceRate, advanceValue pgtype.Numeric
			)
			err := rows.Scan(
				&line.InvoiceID,
				&line.CustomerID,
				&taxable,
				&gstRate,
				&gstAmount,
				&whtAmount,
				&advanceRate,
				&advanceValue,
				&line.NonFiler,
			)
			if err != nil {
				return err
			}
			line.TaxableAmount = numericToDecimal(taxable)
			line.GSTRate = numericToDecimal(gstRate)
			line.GSTAmount = numericToDecimal(gstAmount)
			line.WHTAmount = numericToDecimal(whtAmount)
			line.AdvanceTaxRate = numericToDecimal(advanceRate)
			line.AdvanceTaxAmount = numericToDecimal(advanceValue)
			lines = append(lines, line)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return lines, nil
}
