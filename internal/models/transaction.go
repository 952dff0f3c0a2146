package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the database representation of one transaction row.
// Most text columns are nullable; empty strings map to NULL on write and
// back to empty strings on read.
type Transaction struct {
	TransactionID       string          `db:"transaction_id"`
	AccountID           string          `db:"account_id"`
	TransactionType     string          `db:"transaction_type"`
	Amount              decimal.Decimal `db:"amount"`
	CurrencyCode        string          `db:"currency_code"`
	DateTime            time.Time       `db:"date_time"`
	Description         string          `db:"description"`
	ExternalID          string          `db:"external_id"` // Dedupe key with account_id when present
	BankName            string          `db:"bank_name"`
	Branch              string          `db:"branch"`
	TransactionSender   string          `db:"transaction_sender"`
	TransactionReceiver string          `db:"transaction_receiver"`
	CounterpartyName    string          `db:"counterparty_name"`
	FromParty           string          `db:"from_party"`
	ToParty             string          `db:"to_party"`
	TransactionDetails  string          `db:"transaction_details"`
	Country             string          `db:"country"`
	EmailID             string          `db:"email_id"`
	EmailDate           string          `db:"email_date"`
	AuditFields
}
