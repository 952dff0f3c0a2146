package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionTotals holds per-type aggregates for one account, as absolute
// sums partitioned by transaction type.
type TransactionTotals struct {
	TransactionCount int64           `json:"transactionCount"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	TotalTransfer    decimal.Decimal `json:"totalTransfer"`
}

// AccountSummary is the full reporting view of one account: aggregates plus
// the complete newest-first transaction list. NetBalance is income minus
// expense; transfers are excluded from the net by policy.
type AccountSummary struct {
	Account          Account         `json:"account"`
	TransactionCount int64           `json:"transactionCount"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	TotalTransfer    decimal.Decimal `json:"totalTransfer"`
	NetBalance       decimal.Decimal `json:"netBalance"`
	Transactions     []Transaction   `json:"transactions"`
}
