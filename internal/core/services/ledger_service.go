package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
	portsrepo "github.com/dafterhq/fulus/internal/core/ports/repositories"
	portssvc "github.com/dafterhq/fulus/internal/core/ports/services"
	"github.com/dafterhq/fulus/internal/dto"
	"github.com/dafterhq/fulus/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultCurrency = "OMR"
const defaultBankName = "Unknown"

// LedgerService implements the ledger operations over a LedgerRepository:
// get-or-create accounts, idempotent transaction ingestion and the summary
// queries.
type LedgerService struct {
	repo portsrepo.LedgerRepository
}

var _ portssvc.LedgerSvc = (*LedgerService)(nil)

// NewLedgerService builds a LedgerService over the given repository.
func NewLedgerService(repo portsrepo.LedgerRepository) *LedgerService {
	return &LedgerService{repo: repo}
}

// CreateAccount returns the existing account when the account number is
// already known (exact match, no field mutation), otherwise creates one.
func (s *LedgerService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.AccountNumber == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}

	existing, err := s.repo.FindAccountByNumber(ctx, req.AccountNumber)
	if err == nil {
		logger.Info("Account already exists", slog.String("account_number", req.AccountNumber))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up account", slog.String("error", err.Error()), slog.String("account_number", req.AccountNumber))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNotCreated, err)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		AccountNumber: req.AccountNumber,
		BankName:      orDefault(req.BankName, defaultBankName),
		AccountHolder: req.AccountHolder,
		CurrencyCode:  orDefault(req.Currency, defaultCurrency),
		Balance:       decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race against a concurrent create; the stored row wins.
			return s.repo.FindAccountByNumber(ctx, req.AccountNumber)
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_number", req.AccountNumber))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNotCreated, err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return &account, nil
}

// CreateTransaction persists one normalized transaction. The parent account
// is created implicitly when absent. When the record carries a bank
// transaction id that already exists under the account, the prior
// transaction is returned with created=false and nothing is inserted.
func (s *LedgerService) CreateTransaction(ctx context.Context, data domain.ParsedTransaction) (*domain.Transaction, bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if data.AccountNumber == "" {
		return nil, false, fmt.Errorf("%w: no account number provided for transaction", apperrors.ErrValidation)
	}

	account, err := s.CreateAccount(ctx, dto.CreateAccountRequest{
		AccountNumber: data.AccountNumber,
		BankName:      data.BankName,
		Currency:      data.Currency,
	})
	if err != nil {
		return nil, false, err
	}

	if data.TransactionID != "" {
		existing, err := s.repo.FindTransactionByExternalID(ctx, account.AccountID, data.TransactionID)
		if err == nil {
			logger.Info("Transaction already exists", slog.String("external_id", data.TransactionID), slog.String("account_number", data.AccountNumber))
			return existing, false, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, fmt.Errorf("%w: %w", apperrors.ErrNotCreated, err)
		}
	}

	now := time.Now()
	dateTime := data.DateTime
	if dateTime.IsZero() {
		dateTime = now
	}

	txn := domain.Transaction{
		TransactionID:       uuid.NewString(),
		AccountID:           account.AccountID,
		TransactionType:     domain.ParseTransactionType(data.TransactionType),
		Amount:              data.Amount,
		CurrencyCode:        orDefault(data.Currency, defaultCurrency),
		DateTime:            dateTime,
		Description:         data.Description,
		ExternalID:          data.TransactionID,
		BankName:            data.BankName,
		Branch:              data.Branch,
		TransactionSender:   data.TransactionSender,
		TransactionReceiver: data.TransactionReceiver,
		CounterpartyName:    data.CounterpartyName,
		FromParty:           data.FromParty,
		ToParty:             data.ToParty,
		TransactionDetails:  data.TransactionDetails,
		Country:             data.Country,
		EmailID:             data.EmailID,
		EmailDate:           data.EmailDate,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.repo.SaveTransaction(ctx, txn); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) && data.TransactionID != "" {
			existing, findErr := s.repo.FindTransactionByExternalID(ctx, account.AccountID, data.TransactionID)
			if findErr == nil {
				return existing, false, nil
			}
		}
		logger.Error("Failed to save transaction", slog.String("error", err.Error()), slog.String("account_number", data.AccountNumber))
		return nil, false, fmt.Errorf("%w: %w", apperrors.ErrNotCreated, err)
	}

	// The cached balance follows the net policy: income adds, expense
	// subtracts, transfers do not move it.
	if delta := balanceDelta(txn); !delta.IsZero() {
		if err := s.repo.AdjustAccountBalance(ctx, account.AccountID, delta, now); err != nil {
			// The transaction is already stored; a stale cache is recomputable.
			logger.Warn("Failed to adjust cached balance", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		}
	}

	logger.Info("Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_number", data.AccountNumber))
	return &txn, true, nil
}

// GetAccountSummary returns per-type totals, net balance and the complete
// newest-first transaction list for one account.
func (s *LedgerService) GetAccountSummary(ctx context.Context, accountNumber string) (*domain.AccountSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.repo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for summary", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		}
		return nil, err
	}

	totals, err := s.repo.SummarizeTransactionsByType(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize account %s: %w", accountNumber, err)
	}

	transactions, err := s.repo.ListTransactionsByAccount(ctx, account.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountNumber, err)
	}

	return &domain.AccountSummary{
		Account:          *account,
		TransactionCount: totals.TransactionCount,
		TotalIncome:      totals.TotalIncome,
		TotalExpense:     totals.TotalExpense,
		TotalTransfer:    totals.TotalTransfer,
		NetBalance:       totals.TotalIncome.Sub(totals.TotalExpense),
		Transactions:     transactions,
	}, nil
}

// GetTransactionsByDateRange returns transactions with
// start <= date_time <= end, newest first. An unknown account yields an
// empty result, not an error.
func (s *LedgerService) GetTransactionsByDateRange(ctx context.Context, accountNumber string, start, end time.Time) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.repo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return []domain.Transaction{}, nil
		}
		logger.Error("Failed to find account for date range query", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		return nil, err
	}

	transactions, err := s.repo.ListTransactionsByDateRange(ctx, account.AccountID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by date range for account %s: %w", accountNumber, err)
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	return transactions, nil
}

// ListAccountSummaries returns a summary for every known account.
func (s *LedgerService) ListAccountSummaries(ctx context.Context) ([]domain.AccountSummary, error) {
	accounts, err := s.repo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	summaries := make([]domain.AccountSummary, 0, len(accounts))
	for _, account := range accounts {
		summary, err := s.GetAccountSummary(ctx, account.AccountNumber)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}
	return summaries, nil
}

// DeleteAccount removes an account; its transactions go with it via the
// cascade constraint.
func (s *LedgerService) DeleteAccount(ctx context.Context, accountNumber string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.repo.FindAccountByNumber(ctx, accountNumber)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAccount(ctx, account.AccountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_number", accountNumber))
		return err
	}
	logger.Info("Account deleted", slog.String("account_number", accountNumber))
	return nil
}

func balanceDelta(txn domain.Transaction) decimal.Decimal {
	switch txn.TransactionType {
	case domain.TypeIncome:
		return txn.Amount
	case domain.TypeExpense:
		return txn.Amount.Neg()
	default:
		return decimal.Zero
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
