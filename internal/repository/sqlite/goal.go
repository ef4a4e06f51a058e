package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, category, icon, color, status, created_at, updated_at, completed_at`

type goalRepository struct {
	db        *sql.DB
	txManager repository.TxManager
}

func NewGoalRepository(db *sql.DB, txManager repository.TxManager) repository.GoalRepository {
	return &goalRepository{db: db, txManager: txManager}
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var (
		goal                       models.Goal
		deadline, created, updated int64
		completed                  sql.NullInt64
	)
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Name,
		&goal.TargetAmount, &goal.CurrentAmount, &deadline,
		&goal.Category, &goal.Icon, &goal.Color, &goal.Status,
		&created, &updated, &completed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	goal.Deadline = fromNanos(deadline)
	goal.CreatedAt = fromNanos(created)
	goal.UpdatedAt = fromNanos(updated)
	if completed.Valid {
		t := fromNanos(completed.Int64)
		goal.CompletedAt = &t
	}
	return &goal, nil
}

func completedNanos(goal *models.Goal) sql.NullInt64 {
	if goal.CompletedAt == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNanos(*goal.CompletedAt), Valid: true}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}

	_, err := getTxOrDB(ctx, r.db).ExecContext(ctx, query,
		goal.ID, goal.UserID, goal.Name,
		goal.TargetAmount, goal.CurrentAmount, toNanos(goal.Deadline),
		goal.Category, goal.Icon, goal.Color, string(goal.Status),
		toNanos(goal.CreatedAt), toNanos(goal.UpdatedAt), completedNanos(goal),
	)
	return err
}

func (r *goalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = ? AND user_id = ?`
	return scanGoal(getTxOrDB(ctx, r.db).QueryRowContext(ctx, query, id, userID))
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID uuid.UUID, status *models.GoalStatus) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = ?`

	args := []interface{}{userID}
	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}
	query += " ORDER BY created_at DESC, rowid DESC"

	rows, err := getTxOrDB(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

// modify читает цель, меняет ее в Go и записывает обратно в одной транзакции.
// Decimal-арифметику нельзя отдать SQLite: там она шла бы через REAL.
func (r *goalRepository) modify(ctx context.Context, userID, id uuid.UUID, change func(g *models.Goal)) (*models.Goal, error) {
	var goal *models.Goal
	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		g, err := r.GetByID(ctx, userID, id)
		if err != nil {
			return err
		}

		now := time.Now()
		change(g)
		g.MarkCompletedIfReached(now)
		g.UpdatedAt = now

		query := `
			UPDATE goals SET
				name = ?, target_amount = ?, current_amount = ?, deadline = ?,
				category = ?, icon = ?, color = ?, status = ?,
				updated_at = ?, completed_at = ?
			WHERE id = ? AND user_id = ?`
		_, err = getTxOrDB(ctx, r.db).ExecContext(ctx, query,
			g.Name, g.TargetAmount, g.CurrentAmount, toNanos(g.Deadline),
			g.Category, g.Icon, g.Color, string(g.Status),
			toNanos(g.UpdatedAt), completedNanos(g),
			id, userID,
		)
		if err != nil {
			return err
		}
		goal = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (r *goalRepository) Update(ctx context.Context, userID, id uuid.UUID, update *models.GoalUpdate) (*models.Goal, error) {
	return r.modify(ctx, userID, id, update.Apply)
}

func (r *goalRepository) AddFunds(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*models.Goal, error) {
	return r.modify(ctx, userID, id, func(g *models.Goal) {
		g.CurrentAmount = g.CurrentAmount.Add(amount)
	})
}

func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := getTxOrDB(ctx, r.db).ExecContext(ctx, `DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *goalRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := getTxOrDB(ctx, r.db).ExecContext(ctx, `DELETE FROM goals WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
