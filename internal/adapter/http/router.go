package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/pharmaops/erpledger/internal/adapter/http/handler"
	"github.com/pharmaops/erpledger/internal/adapter/http/middleware"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	LedgerHandler    *handler.LedgerHandler
	InvoiceHandler   *handler.InvoiceHandler
	ReportHandler    *handler.ReportHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore usecase.IdempotencyStore
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(log.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Ledger
		r.Route("/ledger", func(r chi.Router) {
			r.Post("/entries", cfg.LedgerHandler.Create)
			r.Post("/reversals", cfg.LedgerHandler.Reverse)
			r.Get("/references/{referenceType}/{referenceID}", cfg.LedgerHandler.GetByReference)
			r.Delete("/references/{referenceType}/{referenceID}", cfg.LedgerHandler.DeleteByReference)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/{id}/balance", cfg.ReportHandler.Balance)
			r.Get("/{id}/statement", cfg.ReportHandler.Statement)
		})

		// Invoices
		r.Route("/invoices", func(r chi.Router) {
			r.Post("/calculate", cfg.InvoiceHandler.Calculate)
			r.Post("/{id}/confirm", cfg.InvoiceHandler.Confirm)
			r.Post("/{id}/cancel", cfg.InvoiceHandler.Cancel)
		})

		// Reports
		r.Route("/reports", func(r chi.Router) {
			r.Get("/trial-balance", cfg.ReportHandler.TrialBalance)
			r.Get("/aging/receivables", cfg.ReportHandler.ReceivablesAging)
			r.Get("/aging/payables", cfg.ReportHandler.PayablesAging)
			r.Get("/tax", cfg.ReportHandler.TaxReport)
		})
	})

	return r
}
