package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaops/erpledger/internal/adapter/http/dto"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// ReportHandler handles balance, statement and report requests.
type ReportHandler struct {
	reportingUC *usecase.ReportingUseCase
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportingUC *usecase.ReportingUseCase) *ReportHandler {
	return &ReportHandler{reportingUC: reportingUC}
}

// Balance returns an account balance as of a date (default now).
func (h *ReportHandler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	asOf, err := parseTimeQuery(r, "as_of", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of", err.Error())
		return
	}

	balance, err := h.reportingUC.AccountBalance(r.Context(), accountID, asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Balance:   balance,
	})
}

// Statement returns an account statement for a date window. Passing
// with_invoices=true interleaves the originating invoices.
func (h *ReportHandler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	start, err := parseTimeQuery(r, "start_date", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}

	end, err := parseTimeQuery(r, "end_date", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	var statement any
	if r.URL.Query().Get("with_invoices") == "true" {
		statement, err = h.reportingUC.AccountStatementWithInvoices(r.Context(), accountID, start, end)
	} else {
		statement, err = h.reportingUC.AccountStatement(r.Context(), accountID, start, end)
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statement)
}

// TrialBalance returns the system-wide trial balance as of a date.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseTimeQuery(r, "as_of", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of", err.Error())
		return
	}

	tb, err := h.reportingUC.TrialBalance(r.Context(), asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "trial balance failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tb)
}

// ReceivablesAging returns the receivables aging report.
func (h *ReportHandler) ReceivablesAging(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseTimeQuery(r, "as_of", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of", err.Error())
		return
	}

	report, err := h.reportingUC.ReceivablesAging(r.Context(), asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build aging report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// PayablesAging returns the payables aging report.
func (h *ReportHandler) PayablesAging(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseTimeQuery(r, "as_of", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of", err.Error())
		return
	}

	report, err := h.reportingUC.PayablesAging(r.Context(), asOf)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build aging report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// TaxReport returns GST, WHT and advance tax totals for a window.
func (h *ReportHandler) TaxReport(w http.ResponseWriter, r *http.Request) {
	start, err := parseTimeQuery(r, "start_date", time.Time{})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}

	end, err := parseTimeQuery(r, "end_date", time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	report, err := h.reportingUC.TaxReport(r.Context(), start, end)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build tax report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}
