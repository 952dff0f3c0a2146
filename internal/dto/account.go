package dto

import (
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Only the account number is required; the rest falls back to defaults the
// way implicit account creation during ingestion does.
type CreateAccountRequest struct {
	AccountNumber string `json:"account_number" binding:"required"`
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	Currency      string `json:"currency"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	AccountHolder string          `json:"accountHolder"`
	CurrencyCode  string          `json:"currencyCode"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		AccountNumber: acc.AccountNumber,
		BankName:      acc.BankName,
		AccountHolder: acc.AccountHolder,
		CurrencyCode:  acc.CurrencyCode,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		UpdatedAt:     acc.UpdatedAt,
	}
}
