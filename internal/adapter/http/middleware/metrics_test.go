package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts/CUST-01/balance", "/api/v1/accounts/:id/balance"},
		{"/api/v1/accounts/CUST-01/statement", "/api/v1/accounts/:id/statement"},
		{"/api/v1/accounts/CUST-01", "/api/v1/accounts/:id"},
		{"/api/v1/invoices/INV-2026-001/confirm", "/api/v1/invoices/:id/confirm"},
		{"/api/v1/invoices/calculate", "/api/v1/invoices/calculate"},
		{"/api/v1/ledger/references/invoice/INV-1", "/api/v1/ledger/references/:referenceType/:referenceID"},
		{"/api/v1/reports/trial-balance", "/api/v1/reports/trial-balance"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
