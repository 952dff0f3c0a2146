package parser

import (
	"fmt"
	"strings"

	"github.com/dafterhq/fulus/internal/apperrors"
	"github.com/dafterhq/fulus/internal/core/domain"
)

// Me is the literal substituted for a party that matches the account
// holder's identity markers.
const Me = "me"

// Options configures a TransactionParser.
type Options struct {
	// HolderMarkers are identity fragments of the account holder (name,
	// email, masked account). A sender or receiver matching one of these is
	// replaced by the literal "me".
	HolderMarkers []string
	// DefaultCurrency is used when no currency can be extracted. Empty
	// defaults to OMR.
	DefaultCurrency string
}

// TransactionParser turns raw bank emails into normalized transactions.
// It is a pure function of its input; construct one explicitly and pass it
// where needed.
type TransactionParser struct {
	holderMarkers   []string
	defaultCurrency string
}

// NewTransactionParser builds a parser from the given options.
func NewTransactionParser(opts Options) *TransactionParser {
	markers := make([]string, 0, len(opts.HolderMarkers))
	for _, m := range opts.HolderMarkers {
		if m = strings.TrimSpace(strings.ToLower(m)); m != "" {
			markers = append(markers, m)
		}
	}
	currency := opts.DefaultCurrency
	if currency == "" {
		currency = "OMR"
	}
	return &TransactionParser{holderMarkers: markers, defaultCurrency: currency}
}

// Parse builds one normalized transaction from a raw email record.
//
// The minimum viability condition is an extractable amount plus a type or
// directional signal; anything less returns ErrParseFailure rather than a
// half-filled record passed off as success. Individual field misses inside a
// viable email stay zero values.
func (p *TransactionParser) Parse(rec domain.EmailRecord) (*domain.ParsedTransaction, error) {
	text := rec.Subject + "\n" + rec.Body

	amount, hasAmount := ExtractAmount(text)
	if !hasAmount {
		return nil, fmt.Errorf("%w: no amount in email %s", apperrors.ErrParseFailure, rec.ID)
	}

	txType, hasType := DetectTransactionType(text)
	sender, hasSender := ExtractSender(rec.Body)
	receiver, hasReceiver := ExtractReceiver(rec.Body)
	if !hasType && !hasSender && !hasReceiver {
		return nil, fmt.Errorf("%w: no type or directional signal in email %s", apperrors.ErrParseFailure, rec.ID)
	}

	currency, ok := ExtractCurrency(text)
	if !ok {
		currency = p.defaultCurrency
	}

	dateTime, ok := ExtractDateTime(rec.Body)
	if !ok {
		dateTime, _ = ParseEmailDate(rec.Date)
	}

	bankName, ok := ExtractBankName(text)
	if !ok {
		bankName, _ = BankFromAddress(rec.From)
	}

	accountNumber, _ := ExtractAccountNumber(text)
	transactionID, _ := ExtractTransactionID(text)
	branch, _ := ExtractBranch(text)
	details, _ := ExtractDetails(text)
	country, _ := ExtractCountry(text)

	fromParty, toParty, counterparty := p.resolveParties(txType, sender, receiver)

	tx := &domain.ParsedTransaction{
		AccountNumber:       accountNumber,
		TransactionType:     string(txType),
		Amount:              amount,
		Currency:            currency,
		DateTime:            dateTime,
		Description:         p.describe(rec, details),
		TransactionID:       transactionID,
		BankName:            bankName,
		Branch:              branch,
		TransactionSender:   sender,
		TransactionReceiver: receiver,
		CounterpartyName:    counterparty,
		FromParty:           fromParty,
		ToParty:             toParty,
		TransactionDetails:  details,
		Country:             country,
		EmailID:             rec.ID,
		EmailDate:           rec.Date,
	}
	return tx, nil
}

// resolveParties fills from/to with "me" on the account holder's side and
// picks the counterparty as the other one. With no extracted names, the
// transaction type alone decides which side is "me".
func (p *TransactionParser) resolveParties(txType domain.TransactionType, sender, receiver string) (fromParty, toParty, counterparty string) {
	fromParty = p.meOrName(sender)
	toParty = p.meOrName(receiver)

	switch txType {
	case domain.TypeIncome:
		if toParty == "" {
			toParty = Me
		}
	case domain.TypeExpense:
		if fromParty == "" {
			fromParty = Me
		}
	}

	if fromParty != Me && fromParty != "" {
		counterparty = fromParty
	} else if toParty != Me && toParty != "" {
		counterparty = toParty
	}
	return fromParty, toParty, counterparty
}

// meOrName substitutes the "me" literal when the name matches one of the
// holder's identity markers.
func (p *TransactionParser) meOrName(name string) string {
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	for _, marker := range p.holderMarkers {
		if strings.Contains(lower, marker) {
			return Me
		}
	}
	return name
}

// describe picks a free-text description: the details line when present,
// otherwise the subject, otherwise the first non-empty body line.
func (p *TransactionParser) describe(rec domain.EmailRecord, details string) string {
	if details != "" {
		return details
	}
	if s := strings.TrimSpace(rec.Subject); s != "" {
		return s
	}
	for _, line := range strings.Split(rec.Body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
