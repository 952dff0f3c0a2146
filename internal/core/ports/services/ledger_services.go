package services

import (
	"context"
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/dafterhq/fulus/internal/dto"
)

// LedgerSvc exposes the ledger operations: idempotent account and
// transaction creation plus the summary queries.
type LedgerSvc interface {
	// CreateAccount is get-or-create by account number. An existing account
	// is returned unchanged.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)

	// CreateTransaction persists one normalized transaction, creating the
	// parent account when needed. created is false when an existing
	// transaction with the same (account, transaction_id) was returned
	// instead of inserting a duplicate.
	CreateTransaction(ctx context.Context, data domain.ParsedTransaction) (txn *domain.Transaction, created bool, err error)

	// GetAccountSummary returns aggregates and the full transaction list for
	// one account, or apperrors.ErrNotFound.
	GetAccountSummary(ctx context.Context, accountNumber string) (*domain.AccountSummary, error)

	// GetTransactionsByDateRange returns transactions with inclusive bounds,
	// newest first. An absent account yields an empty slice, not an error.
	GetTransactionsByDateRange(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error)

	// ListAccountSummaries returns a summary for every known account.
	ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error)

	// DeleteAccount removes an account and, by cascade, its transactions.
	DeleteAccount(ctx context.Context, accountNumber string) error
}

// ParserSvc turns one raw email record into a normalized transaction or an
// apperrors.ErrParseFailure.
type ParserSvc interface {
	Parse(rec domain.EmailRecord) (*domain.ParsedTransaction, error)
}

// EmailSource supplies raw email records from paste, upload or an IMAP
// fetch session.
type EmailSource interface {
	Fetch(ctx context.Context) ([]domain.EmailRecord, error)
}

// IngestSvc runs email records through parse-then-persist with per-record
// failure isolation.
type IngestSvc interface {
	IngestRecords(ctx context.Context, records []domain.EmailRecord, persist bool) domain.BatchResult
	FetchAndIngest(ctx context.Context, source EmailSource, persist bool) (domain.BatchResult, error)
}

// ServiceContainer carries the constructed services to the HTTP layer.
type ServiceContainer struct {
	Ledger LedgerSvc
	Parser ParserSvc
	Ingest IngestSvc
}
