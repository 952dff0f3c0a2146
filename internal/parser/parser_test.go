package parser_test

import (
	"testing"
	"time"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/dafterhq/fulus/internal/parser"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParser() *parser.TransactionParser {
	return parser.NewTransactionParser(parser.Options{})
}

func TestParse_DebitAlert(t *testing.T) {
	p := newParser()
	rec := domain.EmailRecord{
		ID:      "msg-1",
		Subject: "Transaction Alert",
		From:    "alerts@bankmuscat.com",
		Date:    "Mon, 12 Jan 2026 14:35:00 +0400",
		Body: "Dear Customer,\n" +
			"Your account A/C No: XXXX1234 has been debited.\n" +
			"Amount: OMR 125.750\n" +
			"Transaction ID: FT26012345\n" +
			"Date: 2026-01-12 14:30:00\n" +
			"Available Balance: OMR 1,500.250\n",
	}

	tx, err := p.Parse(rec)
	require.NoError(t, err)

	assert.Equal(t, "XXXX1234", tx.AccountNumber)
	assert.Equal(t, string(domain.TypeExpense), tx.TransactionType)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("125.750")), "got %s", tx.Amount)
	assert.Equal(t, "OMR", tx.Currency)
	assert.True(t, tx.DateTime.Equal(time.Date(2026, 1, 12, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "FT26012345", tx.TransactionID)
	assert.Equal(t, "Bank Muscat", tx.BankName)
	assert.Equal(t, "Transaction Alert", tx.Description)
	assert.Equal(t, parser.Me, tx.FromParty)
	assert.Equal(t, "msg-1", tx.EmailID)
	assert.Equal(t, rec.Date, tx.EmailDate)
}

func TestParse_IncomeWithSender(t *testing.T) {
	p := newParser()
	rec := domain.EmailRecord{
		ID:      "msg-2",
		Subject: "Credit Advice",
		From:    "alerts@nbo.om",
		Body: "Your account has been credited.\n" +
			"Amount: OMR 300.000\n" +
			"From: Salim Traders\n" +
			"Transaction Details: SALARY\n",
	}

	tx, err := p.Parse(rec)
	require.NoError(t, err)

	assert.Equal(t, string(domain.TypeIncome), tx.TransactionType)
	assert.Equal(t, "Salim Traders", tx.TransactionSender)
	assert.Equal(t, "Salim Traders", tx.FromParty)
	assert.Equal(t, parser.Me, tx.ToParty)
	assert.Equal(t, "Salim Traders", tx.CounterpartyName)
	assert.Equal(t, "SALARY", tx.TransactionDetails)
	assert.Equal(t, "SALARY", tx.Description)
}

func TestParse_HolderMarkerBecomesMe(t *testing.T) {
	p := parser.NewTransactionParser(parser.Options{HolderMarkers: []string{"john doe"}})
	rec := domain.EmailRecord{
		ID:      "msg-3",
		Subject: "Payment Confirmation",
		Body: "Amount: OMR 20.500 paid to Lulu Hypermarket\n" +
			"From: John Doe\n",
	}

	tx, err := p.Parse(rec)
	require.NoError(t, err)

	assert.Equal(t, string(domain.TypeExpense), tx.TransactionType)
	assert.Equal(t, parser.Me, tx.FromParty)
	assert.Equal(t, "Lulu Hypermarket", tx.ToParty)
	assert.Equal(t, "Lulu Hypermarket", tx.CounterpartyName)
}

func TestParse_EmailDateFallback(t *testing.T) {
	p := newParser()
	rec := domain.EmailRecord{
		ID:      "msg-4",
		Subject: "Debit Alert",
		From:    "alerts@bankdhofar.com",
		Date:    "Mon, 12 Jan 2026 14:30:00 +0400",
		Body:    "Amount: OMR 5.000 debited at Carrefour\n",
	}

	tx, err := p.Parse(rec)
	require.NoError(t, err)

	assert.Equal(t, 2026, tx.DateTime.Year())
	assert.Equal(t, time.January, tx.DateTime.Month())
	assert.Equal(t, 12, tx.DateTime.Day())
	assert.Equal(t, "Bank Dhofar", tx.BankName)
}

func TestParse_DefaultCurrency(t *testing.T) {
	p := parser.NewTransactionParser(parser.Options{DefaultCurrency: "AED"})
	rec := domain.EmailRecord{
		ID:      "msg-5",
		Subject: "Debit Alert",
		Body:    "Amount: 12.000 debited from your card\n",
	}

	tx, err := p.Parse(rec)
	require.NoError(t, err)
	assert.Equal(t, "AED", tx.Currency)
}

func TestParse_NoAmount(t *testing.T) {
	p := newParser()
	rec := domain.EmailRecord{
		ID:      "msg-6",
		Subject: "Welcome",
		Body:    "Dear Customer, your account has been debited. Thank you.",
	}

	_, err := p.Parse(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParseFailure)
}

func TestParse_NoSignal(t *testing.T) {
	p := newParser()
	rec := domain.EmailRecord{
		ID:      "msg-7",
		Subject: "Statement",
		Body:    "Amount: OMR 10.000\nThank you.",
	}

	_, err := p.Parse(rec)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrParseFailure)
}
