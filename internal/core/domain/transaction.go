package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies the direction of a transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
	TypeUnknown  TransactionType = "unknown"
)

// ParseTransactionType maps an arbitrary input string to a closed
// TransactionType. Anything unrecognized becomes TypeUnknown.
func ParseTransactionType(s string) TransactionType {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome
	case TypeExpense:
		return TypeExpense
	case TypeTransfer:
		return TypeTransfer
	default:
		return TypeUnknown
	}
}

// Transaction represents a single persisted transaction under an account.
// ExternalID is the bank-supplied reference; together with the account it is
// the deduplication key for idempotent ingestion.
type Transaction struct {
	TransactionID       string          `json:"transactionID"` // Primary Key (UUID)
	AccountID           string          `json:"accountID"`     // FK -> Account.AccountID, cascade delete
	TransactionType     TransactionType `json:"transactionType"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	DateTime            time.Time       `json:"dateTime"`
	Description         string          `json:"description"`
	ExternalID          string          `json:"externalID"` // Bank transaction id, empty when the email carried none
	BankName            string          `json:"bankName"`
	Branch              string          `json:"branch"`
	TransactionSender   string          `json:"transactionSender"`
	TransactionReceiver string          `json:"transactionReceiver"`
	CounterpartyName    string          `json:"counterpartyName"`
	FromParty           string          `json:"fromParty"` // "me" or counterparty name
	ToParty             string          `json:"toParty"`   // "me" or counterparty name
	TransactionDetails  string          `json:"transactionDetails"`
	Country             string          `json:"country"`
	EmailID             string          `json:"emailID"`   // Provenance: source email id
	EmailDate           string          `json:"emailDate"` // Provenance: raw Date header
	AuditFields
}
