package mapping

import (
	"github.com/dafterhq/fulus/internal/core/domain"
	"github.com/dafterhq/fulus/internal/models"
)

// ToModelAccount converts a domain.Account to its database model.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		AccountNumber: d.AccountNumber,
		BankName:      d.BankName,
		AccountHolder: d.AccountHolder,
		CurrencyCode:  d.CurrencyCode,
		Balance:       d.Balance,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainAccount converts a database account model to the domain type.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		AccountNumber: m.AccountNumber,
		BankName:      m.BankName,
		AccountHolder: m.AccountHolder,
		CurrencyCode:  m.CurrencyCode,
		Balance:       m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
