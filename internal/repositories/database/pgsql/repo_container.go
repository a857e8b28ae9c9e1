package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryContainer holds every repository backed by one pgx pool.
type RepositoryContainer struct {
	Account     *PgxAccountRepository
	Transaction *PgxTransactionRepository
	Category    *PgxCategoryRepository
	Budget      *PgxBudgetRepository
	Settings    *PgxSettingsRepository
}

// NewRepositoryContainer wires all repositories over the given pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	accountRepo := NewAccountRepository(pool)
	return &RepositoryContainer{
		Account:     accountRepo,
		Transaction: NewTransactionRepository(pool, accountRepo),
		Category:    NewCategoryRepository(pool),
		Budget:      NewBudgetRepository(pool),
		Settings:    NewSettingsRepository(pool),
	}
}
