package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestTransactionRepository_FilterInclusiveWindow(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	day := func(d int) time.Time { return time.Date(2025, 1, d, 12, 0, 0, 0, time.UTC) }
	for _, d := range []int{1, 5, 10, 15} {
		err := repo.Create(ctx, &models.Transaction{
			UserID: owner, Type: models.TransactionTypeExpense,
			Amount: decimal.NewFromInt(int64(d)), Category: "Food", Date: day(d),
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	start, end := day(5), day(10)
	got, err := repo.GetByUserID(ctx, owner, &models.TransactionFilter{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	if !got[0].Date.Equal(day(10)) || !got[1].Date.Equal(day(5)) {
		t.Errorf("unexpected order: %v, %v", got[0].Date, got[1].Date)
	}

	income := models.TransactionTypeIncome
	none, _ := repo.GetByUserID(ctx, owner, &models.TransactionFilter{Type: &income})
	if len(none) != 0 {
		t.Errorf("income filter returned %d", len(none))
	}
}

func TestTransactionRepository_DeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(NewStore())
	owner := uuid.New()

	tx := &models.Transaction{UserID: owner, Type: models.TransactionTypeIncome, Amount: decimal.NewFromInt(1), Category: "Salary", Date: time.Now()}
	_ = repo.Create(ctx, tx)

	if err := repo.Delete(ctx, uuid.New(), tx.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("delete by stranger: err = %v", err)
	}
	if err := repo.Delete(ctx, owner, tx.ID); err != nil {
		t.Errorf("delete by owner: %v", err)
	}
	if err := repo.Delete(ctx, owner, tx.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete: err = %v", err)
	}
}
