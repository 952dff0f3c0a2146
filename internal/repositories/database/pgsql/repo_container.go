package pgsql

import (
	portsrepo "github.com/dafterhq/fulus/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LedgerRepository bundles the account and transaction repositories into the
// single facade the ledger service depends on.
type LedgerRepository struct {
	*PgxAccountRepository
	*PgxTransactionRepository
}

var _ portsrepo.LedgerRepository = (*LedgerRepository)(nil)

// NewLedgerRepository builds the Postgres-backed ledger repository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{
		PgxAccountRepository:     newPgxAccountRepository(pool),
		PgxTransactionRepository: newPgxTransactionRepository(pool),
	}
}
