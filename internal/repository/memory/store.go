// Package memory - хранилище в памяти процесса для STORAGE_BACKEND=memory и тестов.
// Реализует те же интерфейсы, что и Postgres-репозитории, с теми же гарантиями
// изоляции по владельцу и атомарности AddFunds.
package memory

import (
	"context"
	"sync"

	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

type Store struct {
	mu  sync.Mutex
	seq uint64

	goals        map[uuid.UUID]*goalRecord
	transactions map[uuid.UUID]*transactionRecord
	investments  map[uuid.UUID]*investmentRecord
}

func NewStore() *Store {
	return &Store{
		goals:        make(map[uuid.UUID]*goalRecord),
		transactions: make(map[uuid.UUID]*transactionRecord),
		investments:  make(map[uuid.UUID]*investmentRecord),
	}
}

// NewRepositories собирает набор репозиториев поверх одного Store
func NewRepositories() *repository.Repositories {
	store := NewStore()
	return &repository.Repositories{
		TxManager:   txManager{},
		Goal:        &goalRepository{store: store},
		Transaction: &transactionRepository{store: store},
		Investment:  &investmentRepository{store: store},
	}
}

// nextSeq вызывается под s.mu
func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// txManager не дает изоляции между операциями; каждая операция Store атомарна сама по себе
type txManager struct{}

func (txManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
