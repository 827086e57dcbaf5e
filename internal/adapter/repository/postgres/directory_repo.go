package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmaops/erpledger/internal/domain"
	"github.com/pharmaops/erpledger/internal/usecase"
)

// kindLookup resolves one account kind to its status.
type kindLookup func(ctx context.Context, pool *pgxpool.Pool, accountID string) (usecase.AccountStatus, error)

// AccountDirectory implements usecase.AccountDirectory over the party and
// chart-of-accounts tables. Each account kind dispatches to its own
// lookup; adding a kind means adding a table and one entry here.
type AccountDirectory struct {
	pool    *pgxpool.Pool
	lookups map[domain.AccountType]kindLookup
}

// NewAccountDirectory creates a new AccountDirectory.
func NewAccountDirectory(pool *pgxpool.Pool) *AccountDirectory {
	return &AccountDirectory{
		pool: pool,
		lookups: map[domain.AccountType]kindLookup{
			domain.AccountTypeCustomer: lookupCustomer,
			domain.AccountTypeSupplier: lookupSupplier,
			domain.AccountTypeAccount:  lookupAccount,
		},
	}
}

// Lookup resolves an account's existence and status. User accounts are
// internal identities without a backing table and are always valid.
func (d *AccountDirectory) Lookup(ctx context.Context, accountID string, accountType domain.AccountType) (usecase.AccountStatus, error) {
	if accountType == domain.AccountTypeUser {
		return usecase.AccountStatus{Exists: true, IsActive: true}, nil
	}

	lookup, ok := d.lookups[accountType]
	if !ok {
		return usecase.AccountStatus{}, fmt.Errorf("%w: %s", domain.ErrUnknownAccountType, accountType)
	}

	return lookup(ctx, d.pool, accountID)
}

func lookupCustomer(ctx context.Context, pool *pgxpool.Pool, accountID string) (usecase.AccountStatus, error) {
	var active bool

	err := pool.QueryRow(ctx, `SELECT active FROM customers WHERE id = $1`, accountID).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.AccountStatus{}, nil
	}
	if err != nil {
		return usecase.AccountStatus{}, err
	}

	return usecase.AccountStatus{Exists: true, IsActive: active}, nil
}

func lookupSupplier(ctx context.Context, pool *pgxpool.Pool, accountID string) (usecase.AccountStatus, error) {
	var active bool

	err := pool.QueryRow(ctx, `SELECT active FROM suppliers WHERE id = $1`, accountID).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.AccountStatus{}, nil
	}
	if err != nil {
		return usecase.AccountStatus{}, err
	}

	return usecase.AccountStatus{Exists: true, IsActive: active}, nil
}

func lookupAccount(ctx context.Context, pool *pgxpool.Pool, accountID string) (usecase.AccountStatus, error) {
	var (
		active   bool
		category string
	)

	err := pool.QueryRow(ctx, `SELECT active, category FROM accounts WHERE id = $1`, accountID).Scan(&active, &category)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.AccountStatus{}, nil
	}
	if err != nil {
		return usecase.AccountStatus{}, err
	}

	return usecase.AccountStatus{
		Exists:             true,
		IsActive:           active,
		CanBeUsedForClaims: claimsEligible(category),
	}, nil
}

// claimsEligible reports whether a chart-of-accounts category may receive
// second-tier discount claims.
func claimsEligible(category string) bool {
	switch category {
	case "adjustment", "claim", "expense":
		return true
	}
	return false
}
