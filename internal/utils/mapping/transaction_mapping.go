package mapping

import (
	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/dafterhq/fulus/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its database model.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		AccountID:           d.AccountID,
		TransactionType:     string(d.TransactionType),
		Amount:              d.Amount,
		CurrencyCode:        d.CurrencyCode,
		DateTime:            d.DateTime,
		Description:         d.Description,
		ExternalID:          d.ExternalID,
		BankName:            d.BankName,
		Branch:              d.Branch,
		TransactionSender:   d.TransactionSender,
		TransactionReceiver: d.TransactionReceiver,
		CounterpartyName:    d.CounterpartyName,
		FromParty:           d.FromParty,
		ToParty:             d.ToParty,
		TransactionDetails:  d.TransactionDetails,
		Country:             d.Country,
		EmailID:             d.EmailID,
		EmailDate:           d.EmailDate,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainTransaction converts a database transaction model to the domain
// type. The stored type string goes through the same coercion as ingestion,
// so rows written before a new type existed still map to a closed variant.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		AccountID:           m.AccountID,
		TransactionType:     domain.ParseTransactionType(m.TransactionType),
		Amount:              m.Amount,
		CurrencyCode:        m.CurrencyCode,
		DateTime:            m.DateTime,
		Description:         m.Description,
		ExternalID:          m.ExternalID,
		BankName:            m.BankName,
		Branch:              m.Branch,
		TransactionSender:   m.TransactionSender,
		TransactionReceiver: m.TransactionReceiver,
		CounterpartyName:    m.CounterpartyName,
		FromParty:           m.FromParty,
		ToParty:             m.ToParty,
		TransactionDetails:  m.TransactionDetails,
		Country:             m.Country,
		EmailID:             m.EmailID,
		EmailDate:           m.EmailDate,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
