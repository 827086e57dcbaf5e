package domain

import "fmt"

// AccountType selects which directory validates an account reference.
type AccountType string

const (
	AccountTypeCustomer AccountType = "customer"
	AccountTypeSupplier AccountType = "supplier"
	AccountTypeAccount  AccountType = "account"
	AccountTypeUser     AccountType = "user"
)

// Valid reports whether the account type is one of the known kinds.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCustomer, AccountTypeSupplier, AccountTypeAccount, AccountTypeUser:
		return true
	}
	return false
}

// RequiresDirectoryLookup reports whether entries against this account type
// must be validated against the account directory. User accounts are
// internal and always considered valid.
func (t AccountType) RequiresDirectoryLookup() bool {
	return t != AccountTypeUser
}

// AccountRef identifies the account one side of a transaction affects.
type AccountRef struct {
	AccountID   string      `json:"account_id"`
	AccountType AccountType `json:"account_type"`
}

// Validate checks the reference is complete and names a known account kind.
func (r AccountRef) Validate() error {
	if r.AccountID == "" {
		return Invalid(ErrAccountNotFound, "account id is required")
	}

	if !r.AccountType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAccountType, r.AccountType)
	}

	return nil
}
