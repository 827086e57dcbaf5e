package domain

import "errors"

var (
	// Account directory errors
	ErrAccountNotFound         = errors.New("account not found")
	ErrAccountInactive         = errors.New("account is inactive")
	ErrUnknownAccountType      = errors.New("unknown account type")
	ErrClaimAccountRequired    = errors.New("claim account is required when discount 2 is applied")
	ErrClaimAccountNotEligible = errors.New("account cannot be used for claims")

	// Ledger entry errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("transaction type must be debit or credit")
	ErrMissingDescription     = errors.New("description is required")
	ErrMissingReference       = errors.New("reference type is required")
	ErrMissingCreatedBy       = errors.New("created by is required")
	ErrEntriesNotFound        = errors.New("no ledger entries found for the given reference")

	// Calculator errors
	ErrDiscountOutOfRange = errors.New("discount percent must be between 0 and 100")
	ErrTaxRateOutOfRange  = errors.New("tax rate must be between 0 and 100")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrNegativeUnitPrice  = errors.New("unit price cannot be negative")

	// Report errors
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrTrialBalanceMismatch = errors.New("trial balance does not sum to zero")
)
