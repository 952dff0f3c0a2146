package repositories

import (
	"context"
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its surrogate key.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByNumber retrieves an account by the bank-assigned account
	// number, exact case-sensitive match. Returns apperrors.ErrNotFound when
	// absent.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// ListAccounts retrieves all accounts ordered by account number.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account. A unique violation on the account
	// number surfaces as apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// AdjustAccountBalance applies a delta to the cached account balance.
	AdjustAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error

	// DeleteAccount removes an account; its transactions cascade.
	DeleteAccount(ctx context.Context, accountID string) error
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByExternalID retrieves the transaction with the given
	// bank-supplied id under one account. Returns apperrors.ErrNotFound when
	// absent; this is the dedupe lookup for idempotent ingestion.
	FindTransactionByExternalID(ctx context.Context, accountID, externalID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves all transactions of an account,
	// newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)

	// ListTransactionsByDateRange retrieves transactions with
	// start <= date_time <= end, newest first.
	ListTransactionsByDateRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error)

	// SummarizeTransactionsByType aggregates counts and per-type sums for
	// one account.
	SummarizeTransactionsByType(ctx context.Context, accountID string) (*domain.TransactionTotals, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction. A unique violation on
	// (account, external id) surfaces as apperrors.ErrDuplicate.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
}

// LedgerRepository combines all account and transaction repository
// interfaces. This is the facade the ledger service depends on.
type LedgerRepository interface {
	AccountReader
	AccountWriter
	TransactionReader
	TransactionWriter
}
