package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParsedTransaction is the normalized record the parser produces from one
// bank email. Every field is always present; extraction misses are zero
// values, never omissions. The json names are the stable field contract
// shared with any storage engine or UI consumer.
type ParsedTransaction struct {
	AccountNumber       string          `json:"account_number"`
	TransactionType     string          `json:"transaction_type"`
	Amount              decimal.Decimal `json:"amount"`
	Currency            string          `json:"currency"`
	DateTime            time.Time       `json:"date_time"`
	Description         string          `json:"description"`
	TransactionID       string          `json:"transaction_id"`
	BankName            string          `json:"bank_name"`
	Branch              string          `json:"branch"`
	TransactionSender   string          `json:"transaction_sender"`
	TransactionReceiver string          `json:"transaction_receiver"`
	CounterpartyName    string          `json:"counterparty_name"`
	FromParty           string          `json:"from_party"`
	ToParty             string          `json:"to_party"`
	TransactionDetails  string          `json:"transaction_details"`
	Country             string          `json:"country"`
	EmailID             string          `json:"email_id"`
	EmailDate           string          `json:"email_date"`
}
