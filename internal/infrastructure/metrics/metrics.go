package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Posting metrics
	EntriesPosted   prometheus.Counter
	EntriesReversed prometheus.Counter
	EntriesDeleted  prometheus.Counter
	PostingDuration prometheus.Histogram
	PostingErrors   *prometheus.CounterVec

	// Invoice metrics
	InvoiceCalculations  prometheus.Counter
	InvoiceConfirmations prometheus.Counter
	InvoiceCancellations prometheus.Counter

	// Report metrics
	ReportRequests *prometheus.CounterVec

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EntriesPosted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "erpledger_entries_posted_total",
			Help: "Total number of double entries posted",
		}),
		EntriesReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "erpledger_entries_reversed_total",
			Help: "Total number of ledger entries reversed",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "erpledger_entries_deleted_total",
			Help: "Total number of ledger entries hard-deleted",
		}),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "erpledger_posting_duration_seconds",
			Help:    "Duration of double-entry posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erpledger_posting_errors_total",
				Help: "Total posting errors by type",
			},
			[]string{"error_type"},
		),
		InvoiceCalculations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "erpledger_invoice_calculations_total",
			Help: "Total number of invoice calculations",
		}),
		InvoiceConfirmations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "erpledger_invoice_confirmations_total",
			Help: "Total number of invoices confirmed and posted",
		}),
		InvoiceCancellations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "erpledger_invoice_cancellations_total",
			Help: "Total number of invoices cancelled",
		}),
		ReportRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "erpledger_report_requests_total",
				Help: "Total report requests by report type",
			},
			[]string{"report"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "erpledger_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
