package usecase

import "time"

const (
	// DefaultCurrency is assumed when a posting carries no currency.
	// Amounts are stored in entry currency; there is no automatic
	// conversion.
	DefaultCurrency = "PKR"

	// balanceCacheTTL bounds how stale a cached balance may be.
	balanceCacheTTL = time.Minute
)
