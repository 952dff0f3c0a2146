package dto

import (
	"time"

	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines a manually entered transaction. The field
// names mirror the normalized parser output so both paths share the
// persistence contract. TransactionType accepts any string; unknown values
// are coerced, but when present it must at least be well-formed per the
// txtype rule.
type CreateTransactionRequest struct {
	AccountNumber       string           `json:"account_number" binding:"required"`
	TransactionType     string           `json:"transaction_type" binding:"omitempty,txtype"`
	Amount              decimal.Decimal  `json:"amount"`
	Currency            string           `json:"currency"`
	DateTime            *time.Time       `json:"date_time"`
	Description         string           `json:"description"`
	TransactionID       string           `json:"transaction_id"`
	BankName            string           `json:"bank_name"`
	Branch              string           `json:"branch"`
	TransactionSender   string           `json:"transaction_sender"`
	TransactionReceiver string           `json:"transaction_receiver"`
	CounterpartyName    string           `json:"counterparty_name"`
	FromParty           string           `json:"from_party"`
	ToParty             string           `json:"to_party"`
	TransactionDetails  string           `json:"transaction_details"`
	Country             string           `json:"country"`
	EmailID             string           `json:"email_id"`
	EmailDate           string           `json:"email_date"`
}

// ToParsedTransaction converts the request to the normalized record shape
// the ledger service consumes.
func (r CreateTransactionRequest) ToParsedTransaction() domain.ParsedTransaction {
	var dateTime time.Time
	if r.DateTime != nil {
		dateTime = *r.DateTime
	}
	return domain.ParsedTransaction{
		AccountNumber:       r.AccountNumber,
		TransactionType:     r.TransactionType,
		Amount:              r.Amount,
		Currency:            r.Currency,
		DateTime:            dateTime,
		Description:         r.Description,
		TransactionID:       r.TransactionID,
		BankName:            r.BankName,
		Branch:              r.Branch,
		TransactionSender:   r.TransactionSender,
		TransactionReceiver: r.TransactionReceiver,
		CounterpartyName:    r.CounterpartyName,
		FromParty:           r.FromParty,
		ToParty:             r.ToParty,
		TransactionDetails:  r.TransactionDetails,
		Country:             r.Country,
		EmailID:             r.EmailID,
		EmailDate:           r.EmailDate,
	}
}

// TransactionResponse defines the data returned for a stored transaction.
type TransactionResponse struct {
	TransactionID       string          `json:"transactionID"`
	AccountID           string          `json:"accountID"`
	TransactionType     string          `json:"transactionType"`
	Amount              decimal.Decimal `json:"amount"`
	CurrencyCode        string          `json:"currencyCode"`
	DateTime            time.Time       `json:"dateTime"`
	Description         string          `json:"description"`
	ExternalID          string          `json:"externalID"`
	BankName            string          `json:"bankName"`
	Branch              string          `json:"branch"`
	TransactionSender   string          `json:"transactionSender"`
	TransactionReceiver string          `json:"transactionReceiver"`
	CounterpartyName    string          `json:"counterpartyName"`
	FromParty           string          `json:"fromParty"`
	ToParty             string          `json:"toParty"`
	TransactionDetails  string          `json:"transactionDetails"`
	Country             string          `json:"country"`
	EmailID             string          `json:"emailID"`
	EmailDate           string          `json:"emailDate"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:       t.TransactionID,
		AccountID:           t.AccountID,
		TransactionType:     string(t.TransactionType),
		Amount:              t.Amount,
		CurrencyCode:        t.CurrencyCode,
		DateTime:            t.DateTime,
		Description:         t.Description,
		ExternalID:          t.ExternalID,
		BankName:            t.BankName,
		Branch:              t.Branch,
		TransactionSender:   t.TransactionSender,
		TransactionReceiver: t.TransactionReceiver,
		CounterpartyName:    t.CounterpartyName,
		FromParty:           t.FromParty,
		ToParty:             t.ToParty,
		TransactionDetails:  t.TransactionDetails,
		Country:             t.Country,
		EmailID:             t.EmailID,
		EmailDate:           t.EmailDate,
		CreatedAt:           t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}

// SummaryResponse defines the reporting view of one account.
type SummaryResponse struct {
	Account          AccountResponse       `json:"account"`
	TransactionCount int64                 `json:"transactionCount"`
	TotalIncome      decimal.Decimal       `json:"totalIncome"`
	TotalExpense     decimal.Decimal       `json:"totalExpense"`
	TotalTransfer    decimal.Decimal       `json:"totalTransfer"`
	NetBalance       decimal.Decimal       `json:"netBalance"`
	Transactions     []TransactionResponse `json:"transactions"`
}

// ToSummaryResponse converts a domain.AccountSummary to its response DTO.
func ToSummaryResponse(s *domain.AccountSummary) SummaryResponse {
	return SummaryResponse{
		Account:          ToAccountResponse(&s.Account),
		TransactionCount: s.TransactionCount,
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		TotalTransfer:    s.TotalTransfer,
		NetBalance:       s.NetBalance,
		Transactions:     ToTransactionResponses(s.Transactions),
	}
}
