package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
	portsrepo "github.com/dafterhq/fulus/internal/core/ports/repositories"
	"github.com/dafterhq/fulus/internal/models"
	"github.com/dafterhq/fulus/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, account_id, transaction_type, amount, currency_code, date_time,
		COALESCE(description, ''), COALESCE(external_id, ''), COALESCE(bank_name, ''), COALESCE(branch, ''),
		COALESCE(transaction_sender, ''), COALESCE(transaction_receiver, ''), COALESCE(counterparty_name, ''),
		COALESCE(from_party, ''), COALESCE(to_party, ''), COALESCE(transaction_details, ''),
		COALESCE(country, ''), COALESCE(email_id, ''), COALESCE(email_date, ''), created_at, updated_at`

// PgxTransactionRepository stores transactions in Postgres.
type PgxTransactionRepository struct {
	BaseRepository
}

var _ portsrepo.TransactionReader = (*PgxTransactionRepository)(nil)
var _ portsrepo.TransactionWriter = (*PgxTransactionRepository)(nil)

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

// SaveTransaction inserts a new transaction. A unique violation on
// (account_id, external_id) surfaces as apperrors.ErrDuplicate.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (
			transaction_id, account_id, transaction_type, amount, currency_code, date_time,
			description, external_id, bank_name, branch,
			transaction_sender, transaction_receiver, counterparty_name,
			from_party, to_party, transaction_details,
			country, email_id, email_date, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.TransactionType,
		m.Amount,
		m.CurrencyCode,
		m.DateTime,
		nullable(m.Description),
		nullable(m.ExternalID),
		nullable(m.BankName),
		nullable(m.Branch),
		nullable(m.TransactionSender),
		nullable(m.TransactionReceiver),
		nullable(m.CounterpartyName),
		nullable(m.FromParty),
		nullable(m.ToParty),
		nullable(m.TransactionDetails),
		nullable(m.Country),
		nullable(m.EmailID),
		nullable(m.EmailDate),
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s under account %s", apperrors.ErrDuplicate, m.ExternalID, m.AccountID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// FindTransactionByExternalID retrieves the transaction with the given
// bank-supplied id under one account.
func (r *PgxTransactionRepository) FindTransactionByExternalID(ctx context.Context, accountID, externalID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 AND external_id = $2;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, accountID, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s under account %s: %w", externalID, accountID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsByAccount retrieves all transactions of an account,
// newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1 ORDER BY date_time DESC;`
	return r.listTransactions(ctx, query, accountID)
}

// ListTransactionsByDateRange retrieves transactions with inclusive bounds
// on date_time, newest first.
func (r *PgxTransactionRepository) ListTransactionsByDateRange(ctx context.Context, accountID string, start, end time.Time) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE account_id = $1 AND date_time >= $2 AND date_time <= $3
		ORDER BY date_time DESC;`
	return r.listTransactions(ctx, query, accountID, start, end)
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// SummarizeTransactionsByType aggregates the count and per-type sums for one
// account in a single query.
func (r *PgxTransactionRepository) SummarizeTransactionsByType(ctx context.Context, accountID string) (*domain.TransactionTotals, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN transaction_type = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'expense' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN transaction_type = 'transfer' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE account_id = $1;
	`
	var totals domain.TransactionTotals
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&totals.TransactionCount,
		&totals.TotalIncome,
		&totals.TotalExpense,
		&totals.TotalTransfer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions for account %s: %w", accountID, err)
	}
	return &totals, nil
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.DateTime,
		&m.Description,
		&m.ExternalID,
		&m.BankName,
		&m.Branch,
		&m.TransactionSender,
		&m.TransactionReceiver,
		&m.CounterpartyName,
		&m.FromParty,
		&m.ToParty,
		&m.TransactionDetails,
		&m.Country,
		&m.EmailID,
		&m.EmailDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}
