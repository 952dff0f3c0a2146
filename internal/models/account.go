package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database representation of a bank account.
type Account struct {
	AccountID     string          `db:"account_id"`
	AccountNumber string          `db:"account_number"`
	BankName      string          `db:"bank_name"`
	AccountHolder string          `db:"account_holder"` // Nullable
	CurrencyCode  string          `db:"currency_code"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}
