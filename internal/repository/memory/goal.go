package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type goalRecord struct {
	goal models.Goal
	seq  uint64
}

type goalRepository struct {
	store *Store
}

func NewGoalRepository(store *Store) repository.GoalRepository {
	return &goalRepository{store: store}
}

func (r *goalRepository) Create(_ context.Context, goal *models.Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.goals[goal.ID] = &goalRecord{goal: *goal, seq: r.store.nextSeq()}
	return nil
}

// lookup вызывается под mu; чужая цель неотличима от несуществующей
func (r *goalRepository) lookup(userID, id uuid.UUID) (*goalRecord, error) {
	rec, ok := r.store.goals[id]
	if !ok || rec.goal.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (r *goalRepository) GetByID(_ context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, err := r.lookup(userID, id)
	if err != nil {
		return nil, err
	}
	goal := rec.goal
	return &goal, nil
}

func (r *goalRepository) GetByUserID(_ context.Context, userID uuid.UUID, status *models.GoalStatus) ([]models.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var recs []*goalRecord
	for _, rec := range r.store.goals {
		if rec.goal.UserID != userID {
			continue
		}
		if status != nil && rec.goal.Status != *status {
			continue
		}
		recs = append(recs, rec)
	}

	// новые сверху
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].goal.CreatedAt.Equal(recs[j].goal.CreatedAt) {
			return recs[i].goal.CreatedAt.After(recs[j].goal.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	goals := make([]models.Goal, 0, len(recs))
	for _, rec := range recs {
		goals = append(goals, rec.goal)
	}
	return goals, nil
}

func (r *goalRepository) Update(_ context.Context, userID, id uuid.UUID, update *models.GoalUpdate) (*models.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, err := r.lookup(userID, id)
	if err != nil {
		return nil, err
	}

	g := &rec.goal
	update.Apply(g)

	now := time.Now()
	g.MarkCompletedIfReached(now)
	g.UpdatedAt = now

	goal := *g
	return &goal, nil
}

func (r *goalRepository) AddFunds(_ context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*models.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, err := r.lookup(userID, id)
	if err != nil {
		return nil, err
	}

	g := &rec.goal
	now := time.Now()
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.MarkCompletedIfReached(now)
	g.UpdatedAt = now

	goal := *g
	return &goal, nil
}

func (r *goalRepository) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, err := r.lookup(userID, id); err != nil {
		return err
	}
	delete(r.store.goals, id)
	return nil
}

func (r *goalRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var n int64
	for key, rec := range r.store.goals {
		if rec.goal.UserID == userID {
			delete(r.store.goals, key)
			n++
		}
	}
	return n, nil
}
