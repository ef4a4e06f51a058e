package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

type investmentRecord struct {
	inv models.Investment
	seq uint64
}

type investmentRepository struct {
	store *Store
}

func NewInvestmentRepository(store *Store) repository.InvestmentRepository {
	return &investmentRepository{store: store}
}

func (r *investmentRepository) Create(_ context.Context, inv *models.Investment) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.investments[inv.ID] = &investmentRecord{inv: *inv, seq: r.store.nextSeq()}
	return nil
}

func (r *investmentRepository) GetByUserID(_ context.Context, userID uuid.UUID, investmentType *string) ([]models.Investment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var recs []*investmentRecord
	for _, rec := range r.store.investments {
		if rec.inv.UserID != userID {
			continue
		}
		if investmentType != nil && rec.inv.Type != *investmentType {
			continue
		}
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].inv.PurchaseDate.Equal(recs[j].inv.PurchaseDate) {
			return recs[i].inv.PurchaseDate.After(recs[j].inv.PurchaseDate)
		}
		return recs[i].seq > recs[j].seq
	})

	investments := make([]models.Investment, 0, len(recs))
	for _, rec := range recs {
		investments = append(investments, rec.inv)
	}
	return investments, nil
}

func (r *investmentRepository) Update(_ context.Context, userID, id uuid.UUID, update *models.InvestmentUpdate) (*models.Investment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.investments[id]
	if !ok || rec.inv.UserID != userID {
		return nil, repository.ErrNotFound
	}

	inv := &rec.inv
	update.Apply(inv)
	inv.UpdatedAt = time.Now()

	out := *inv
	return &out, nil
}

func (r *investmentRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.investments[id]
	if !ok || rec.inv.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.store.investments, id)
	return nil
}
