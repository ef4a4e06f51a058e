package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// GoalRepository - все методы ограничены владельцем (userID)
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, status *models.GoalStatus) ([]models.Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *models.GoalUpdate) (*models.Goal, error)
	// AddFunds атомарно увеличивает current_amount и отмечает цель выполненной при достижении target_amount
	AddFunds(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*models.Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, category, icon, color, status, created_at, updated_at, completed_at`

type goalRepository struct {
	pool *pgxpool.Pool
}

func NewGoalRepository(pool *pgxpool.Pool) GoalRepository {
	return &goalRepository{pool: pool}
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var goal models.Goal
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Name,
		&goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline,
		&goal.Category, &goal.Icon, &goal.Color, &goal.Status,
		&goal.CreatedAt, &goal.UpdatedAt, &goal.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Status == "" {
		goal.Status = models.GoalStatusActive
	}

	_, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query,
		goal.ID, goal.UserID, goal.Name,
		goal.TargetAmount, goal.CurrentAmount, goal.Deadline,
		goal.Category, goal.Icon, goal.Color, goal.Status,
		goal.CreatedAt, goal.UpdatedAt, goal.CompletedAt,
	)
	return err
}

func (r *goalRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND user_id = $2`
	return scanGoal(GetTxOrPool(ctx, r.pool).QueryRow(ctx, query, id, userID))
}

func (r *goalRepository) GetByUserID(ctx context.Context, userID uuid.UUID, status *models.GoalStatus) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`

	args := []interface{}{userID}
	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := GetTxOrPool(ctx, r.pool).Query(ctx, query, args...)
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

// Update меняет только переданные поля. Выполненная цель остается выполненной;
// активная становится выполненной, если новые суммы достигли цели.
func (r *goalRepository) Update(ctx context.Context, userID, id uuid.UUID, update *models.GoalUpdate) (*models.Goal, error) {
	query := `
		UPDATE goals SET
			name = COALESCE($3, name),
			target_amount = COALESCE($4, target_amount),
			current_amount = COALESCE($5, current_amount),
			deadline = COALESCE($6, deadline),
			category = COALESCE($7, category),
			icon = COALESCE($8, icon),
			color = COALESCE($9, color),
			status = CASE
				WHEN COALESCE($5, current_amount) >= COALESCE($4, target_amount) THEN 'completed'
				ELSE status
			END,
			completed_at = CASE
				WHEN completed_at IS NULL AND COALESCE($5, current_amount) >= COALESCE($4, target_amount) THEN $10
				ELSE completed_at
			END,
			updated_at = $10
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalColumns

	return scanGoal(GetTxOrPool(ctx, r.pool).QueryRow(ctx, query,
		id, userID,
		update.Name, update.Target, update.Current, update.Deadline.Ptr(),
		update.Category, update.Icon, update.Color,
		time.Now(),
	))
}

// AddFunds - один UPDATE: строка блокируется на время инкремента,
// поэтому параллельные пополнения не теряют друг друга
func (r *goalRepository) AddFunds(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (*models.Goal, error) {
	query := `
		UPDATE goals SET
			current_amount = current_amount + $3,
			status = CASE
				WHEN current_amount + $3 >= target_amount THEN 'completed'
				ELSE status
			END,
			completed_at = CASE
				WHEN completed_at IS NULL AND current_amount + $3 >= target_amount THEN $4
				ELSE completed_at
			END,
			updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING ` + goalColumns

	return scanGoal(GetTxOrPool(ctx, r.pool).QueryRow(ctx, query, id, userID, amount, time.Now()))
}

func (r *goalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM goals WHERE id = $1 AND user_id = $2`
	tag, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *goalRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM goals WHERE user_id = $1`
	tag, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
