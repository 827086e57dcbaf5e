package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaops/erpledger/internal/adapter/http/dto"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// InvoiceHandler handles invoice calculation and lifecycle requests.
type InvoiceHandler struct {
	invoiceUC *usecase.InvoiceUseCase
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC *usecase.InvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoiceUC: invoiceUC}
}

// Calculate runs the discount and tax pipeline without persisting
// anything. Composition screens call this on every change.
func (h *InvoiceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	totals, err := h.invoiceUC.CalculateInvoice(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to calculate invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// Confirm recomputes totals and posts the invoice to the ledger.
func (h *InvoiceHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	var req dto.ConfirmInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	confirmed, err := h.invoiceUC.ConfirmInvoice(r.Context(), req.ToUseCaseInput(invoiceID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to confirm invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ConfirmedInvoiceResponse{
		Totals: confirmed.Totals,
		Posted: dto.DoubleEntryFromDomain(confirmed.Posted),
	})
}

// Cancel reverses a confirmed invoice's ledger entries.
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	if invoiceID == "" {
		writeError(w, http.StatusBadRequest, "missing invoice ID", "")
		return
	}

	var req dto.CancelInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversals, err := h.invoiceUC.CancelInvoice(r.Context(), invoiceID, req.Reason, req.CreatedBy)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to cancel invoice", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntriesFromDomain(reversals))
}
