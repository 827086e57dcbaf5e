package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableBucket is a fixed days-overdue range for receivables aging.
type ReceivableBucket string

const (
	BucketCurrent ReceivableBucket = "current"
	Bucket1To30   ReceivableBucket = "1-30"
	Bucket31To60  ReceivableBucket = "31-60"
	Bucket61To90  ReceivableBucket = "61-90"
	BucketOver90  ReceivableBucket = ">90"
)

// ReceivableBuckets lists the buckets in reporting order.
var ReceivableBuckets = []ReceivableBucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// ReceivableBucketFor places a days-overdue count into its bucket.
// Exactly 30 days overdue is "1-30"; exactly 31 is "31-60".
func ReceivableBucketFor(daysOverdue int) ReceivableBucket {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// PayableBucket is the due-status category for payables aging.
type PayableBucket string

const (
	PayableCurrentDue PayableBucket = "current_due"
	PayableDueSoon    PayableBucket = "due_soon"
	PayableOverdue    PayableBucket = "overdue"
)

// PayableBuckets lists the buckets in reporting order.
var PayableBuckets = []PayableBucket{PayableCurrentDue, PayableDueSoon, PayableOverdue}

// PayableBucketFor places a days-until-due count into its bucket. Due
// within 7 days counts as due soon; past due is overdue.
func PayableBucketFor(daysUntilDue int) PayableBucket {
	switch {
	case daysUntilDue < 0:
		return PayableOverdue
	case daysUntilDue <= 7:
		return PayableDueSoon
	default:
		return PayableCurrentDue
	}
}

// OutstandingInvoice is an invoice that is neither fully paid nor
// cancelled, as seen by the aging reports.
type OutstandingInvoice struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	AccountID     string          `json:"account_id"`
	DueDate       time.Time       `json:"due_date"`
	Outstanding   decimal.Decimal `json:"outstanding"`
}

// AgingLine sums one account's outstanding amounts per bucket.
type AgingLine struct {
	AccountID string                     `json:"account_id"`
	Buckets   map[string]decimal.Decimal `json:"buckets"`
	Total     decimal.Decimal            `json:"total"`
}

// AgingReport is a derived collections/payables view over outstanding
// invoices; it is not a ledger invariant.
type AgingReport struct {
	AsOf       time.Time                  `json:"as_of"`
	Accounts   []AgingLine                `json:"accounts"`
	Totals     map[string]decimal.Decimal `json:"totals"`
	GrandTotal decimal.Decimal            `json:"grand_total"`
}

// BuildReceivablesAging buckets outstanding receivables by days overdue
// relative to asOf, summed per account and overall.
func BuildReceivablesAging(asOf time.Time, invoices []OutstandingInvoice) *AgingReport {
	return buildAging(asOf, invoices, func(inv OutstandingInvoice) string {
		return string(ReceivableBucketFor(daysBetween(inv.DueDate, asOf)))
	})
}

// BuildPayablesAging buckets outstanding payables by due status relative
// to asOf.
func BuildPayablesAging(asOf time.Time, invoices []OutstandingInvoice) *AgingReport {
	return buildAging(asOf, invoices, func(inv OutstandingInvoice) string {
		return string(PayableBucketFor(daysBetween(asOf, inv.DueDate)))
	})
}

func buildAging(asOf time.Time, invoices []OutstandingInvoice, bucketFor func(OutstandingInvoice) string) *AgingReport {
	report := &AgingReport{
		AsOf:       asOf,
		Totals:     make(map[string]decimal.Decimal),
		GrandTotal: decimal.Zero,
	}

	byAccount := make(map[string]*AgingLine)
	order := make([]string, 0)

	for _, inv := range invoices {
		line, ok := byAccount[inv.AccountID]
		if !ok {
			line = &AgingLine{
				AccountID: inv.AccountID,
				Buckets:   make(map[string]decimal.Decimal),
				Total:     decimal.Zero,
			}
			byAccount[inv.AccountID] = line
			order = append(order, inv.AccountID)
		}

		bucket := bucketFor(inv)
		line.Buckets[bucket] = line.Buckets[bucket].Add(inv.Outstanding)
		line.Total = line.Total.Add(inv.Outstanding)

		report.Totals[bucket] = report.Totals[bucket].Add(inv.Outstanding)
		report.GrandTotal = report.GrandTotal.Add(inv.Outstanding)
	}

	report.Accounts = make([]AgingLine, 0, len(order))
	for _, id := range order {
		report.Accounts = append(report.Accounts, *byAccount[id])
	}

	return report
}

// daysBetween counts whole calendar days from a to b, comparing dates in
// UTC so time-of-day never shifts a boundary.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()

	start := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	end := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)

	return int(end.Sub(start).Hours() / 24)
}
