package domain

import (
	"github.com/shopspring/decimal"
)

// Account represents a bank account tracked by the ledger.
// Accounts are keyed by the bank-assigned account number and are created
// implicitly the first time an ingested transaction references them.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	AccountNumber string          `json:"accountNumber"` // Bank-assigned number, unique, exact match
	BankName      string          `json:"bankName"`
	AccountHolder string          `json:"accountHolder"` // Nullable
	CurrencyCode  string          `json:"currencyCode"`  // Defaults to OMR
	Balance       decimal.Decimal `json:"balance"`       // Cached net of income minus expense
	AuditFields
}
