package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/infrastructure/metrics"
)

// ReportingUseCase answers balance, statement, trial-balance, aging and
// tax-report queries. Everything here is a read-only projection over the
// entry stream (and persisted invoice fields), recomputed on demand.
type ReportingUseCase struct {
	entryRepo   LedgerEntryRepository
	invoiceRepo InvoiceRepository
	cache       Cache
	metrics     *metrics.Metrics
}

// NewReportingUseCase creates a new ReportingUseCase. cache and metrics
// may be nil.
func NewReportingUseCase(entryRepo LedgerEntryRepository, invoiceRepo InvoiceRepository, cache Cache, metrics *metrics.Metrics) *ReportingUseCase {
	return &ReportingUseCase{
		entryRepo:   entryRepo,
		invoiceRepo: invoiceRepo,
		cache:       cache,
		metrics:     metrics,
	}
}

func (uc *ReportingUseCase) recordReport(report string) {
	if uc.metrics != nil {
		uc.metrics.ReportRequests.WithLabelValues(report).Inc()
	}
}

// AccountBalance computes debits minus credits over all entries dated at
// or before asOf. Debit increases the balance, credit decreases it; the
// convention is fixed across account types.
func (uc *ReportingUseCase) AccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	cacheKey := fmt.Sprintf("balance:%s:%d", accountID, asOf.Unix())

	if uc.cache != nil {
		if raw, err := uc.cache.Get(ctx, cacheKey); err == nil {
			if cached, err := decimal.NewFromString(string(raw)); err == nil {
				return cached, nil
			}
		}
	}

	debits, credits, err := uc.entryRepo.SumByAccount(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	balance := debits.Sub(credits)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, []byte(balance.String()), balanceCacheTTL); err != nil {
			log.Warn().Err(err).Str("account_id", accountID).Msg("balance cache write failed")
		}
	}

	return balance, nil
}

// AccountStatement builds the statement over the window (startDate,
// endDate]. Opening balance is the account balance as of startDate, so
// closing == opening + debits - credits holds exactly.
func (uc *ReportingUseCase) AccountStatement(ctx context.Context, accountID string, startDate, endDate time.Time) (*domain.AccountStatement, error) {
	return uc.statement(ctx, accountID, startDate, endDate, false)
}

// AccountStatementWithInvoices is the richer variant interleaving the
// originating invoice documents between entry rows.
func (uc *ReportingUseCase) AccountStatementWithInvoices(ctx context.Context, accountID string, startDate, endDate time.Time) (*domain.AccountStatement, error) {
	return uc.statement(ctx, accountID, startDate, endDate, true)
}

func (uc *ReportingUseCase) statement(ctx context.Context, accountID string, startDate, endDate time.Time, withInvoices bool) (*domain.AccountStatement, error) {
	if startDate.After(endDate) {
		return nil, domain.Invalid(domain.ErrInvalidDateRange, "%s > %s", startDate.Format(time.RFC3339), endDate.Format(time.RFC3339))
	}

	opening, err := uc.AccountBalance(ctx, accountID, startDate)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.GetByAccount(ctx, accountID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var invoices []domain.InvoiceSummary
	if withInvoices {
		invoices, err = uc.invoiceRepo.GetByAccount(ctx, accountID, startDate, endDate)
		if err != nil {
			return nil, err
		}
	}

	return domain.BuildStatementWithInvoices(accountID, startDate, endDate, opening, entries, invoices), nil
}

// TrialBalance accumulates per-account debit and credit totals as of
// asOf. An imbalance indicates a broken double-entry invariant upstream
// and is returned as an error alongside the report.
func (uc *ReportingUseCase) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	uc.recordReport("trial_balance")

	rows, err := uc.entryRepo.AccountTotals(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return domain.BuildTrialBalance(asOf, rows)
}

// ReceivablesAging buckets outstanding sales invoices by days overdue.
func (uc *ReportingUseCase) ReceivablesAging(ctx context.Context, asOf time.Time) (*domain.AgingReport, error) {
	uc.recordReport("receivables_aging")

	invoices, err := uc.invoiceRepo.GetOutstandingReceivables(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return domain.BuildReceivablesAging(asOf, invoices), nil
}

// PayablesAging buckets outstanding purchase invoices by due status.
func (uc *ReportingUseCase) PayablesAging(ctx context.Context, asOf time.Time) (*domain.AgingReport, error) {
	uc.recordReport("payables_aging")

	invoices, err := uc.invoiceRepo.GetOutstandingPayables(ctx, asOf)
	if err != nil {
		return nil, err
	}

	return domain.BuildPayablesAging(asOf, invoices), nil
}

// TaxReport regroups persisted per-line tax fields for the window.
func (uc *ReportingUseCase) TaxReport(ctx context.Context, startDate, endDate time.Time) (*domain.TaxReport, error) {
	uc.recordReport("tax")

	if startDate.After(endDate) {
		return nil, domain.Invalid(domain.ErrInvalidDateRange, "%s > %s", startDate.Format(time.RFC3339), endDate.Format(time.RFC3339))
	}

	lines, err := uc.invoiceRepo.GetTaxLines(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return domain.BuildTaxReport(lines), nil
}
