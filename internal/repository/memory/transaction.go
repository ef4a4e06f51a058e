package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

type transactionRecord struct {
	tx  models.Transaction
	seq uint64
}

type transactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) repository.TransactionRepository {
	return &transactionRepository{store: store}
}

func (r *transactionRepository) Create(_ context.Context, tx *models.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transactions[tx.ID] = &transactionRecord{tx: *tx, seq: r.store.nextSeq()}
	return nil
}

func (r *transactionRepository) GetByUserID(_ context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]models.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var recs []*transactionRecord
	for _, rec := range r.store.transactions {
		if rec.tx.UserID != userID || !matches(&rec.tx, filter) {
			continue
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].tx.Date.Equal(recs[j].tx.Date) {
			return recs[i].tx.Date.After(recs[j].tx.Date)
		}
		return recs[i].seq > recs[j].seq
	})

	transactions := make([]models.Transaction, 0, len(recs))
	for _, rec := range recs {
		transactions = append(transactions, rec.tx)
	}
	return transactions, nil
}

// matches - границы окна включительные, как в SQL-версии
func matches(tx *models.Transaction, filter *models.TransactionFilter) bool {
	if filter == nil {
		return true
	}
	if filter.Type != nil && tx.Type != *filter.Type {
		return false
	}
	if filter.StartDate != nil && tx.Date.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && tx.Date.After(*filter.EndDate) {
		return false
	}
	return true
}

func (r *transactionRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.transactions[id]
	if !ok || rec.tx.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.store.transactions, id)
	return nil
}
