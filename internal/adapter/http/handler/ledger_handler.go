package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaops/erpledger/internal/adapter/http/dto"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// LedgerHandler handles ledger posting HTTP requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Create posts a double entry.
func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoubleEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pair, err := h.ledgerUC.CreateDoubleEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entries", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DoubleEntryFromDomain(pair))
}

// Reverse posts opposite entries for a previously posted reference.
func (h *LedgerHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	reversals, err := h.ledgerUC.ReverseEntries(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse entries", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntriesFromDomain(reversals))
}

// GetByReference lists the entries posted for a document.
func (h *LedgerHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	referenceType := chi.URLParam(r, "referenceType")
	referenceID := chi.URLParam(r, "referenceID")

	entries, err := h.ledgerUC.GetByReference(r.Context(), referenceType, referenceID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// DeleteByReference hard-deletes all entries of a reference.
func (h *LedgerHandler) DeleteByReference(w http.ResponseWriter, r *http.Request) {
	referenceType := chi.URLParam(r, "referenceType")
	referenceID := chi.URLParam(r, "referenceID")

	deleted, err := h.ledgerUC.DeleteByReference(r.Context(), referenceType, referenceID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to delete entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DeletedResponse{Deleted: deleted})
}
