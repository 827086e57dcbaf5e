package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pharmaops/erpledger/internal/adapter/http/dto"
	"github.com/pharmaops/erpledger/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrEntriesNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountInactive),
		errors.Is(err, domain.ErrUnknownAccountType),
		errors.Is(err, domain.ErrClaimAccountRequired),
		errors.Is(err, domain.ErrClaimAccountNotEligible),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidTransactionType),
		errors.Is(err, domain.ErrMissingDescription),
		errors.Is(err, domain.ErrMissingReference),
		errors.Is(err, domain.ErrMissingCreatedBy),
		errors.Is(err, domain.ErrDiscountOutOfRange),
		errors.Is(err, domain.ErrTaxRateOutOfRange),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNegativeUnitPrice),
		errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTrialBalanceMismatch):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseTimeQuery parses an RFC 3339 or date-only query parameter with a
// default value.
func parseTimeQuery(r *http.Request, key string, defaultValue time.Time) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue, nil
	}

	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, nil
	}

	return time.Parse("2006-01-02", val)
}
