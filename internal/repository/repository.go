package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repositories struct {
	TxManager   TxManager
	Goal        GoalRepository
	Transaction TransactionRepository
	Investment  InvestmentRepository
}

func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		TxManager:   NewTxManager(pool),
		Goal:        NewGoalRepository(pool),
		Transaction: NewTransactionRepository(pool),
		Investment:  NewInvestmentRepository(pool),
	}
}
