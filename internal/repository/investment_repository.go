package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InvestmentRepository interface {
	Create(ctx context.Context, inv *models.Investment) error
	GetByUserID(ctx context.Context, userID uuid.UUID, investmentType *string) ([]models.Investment, error)
	Update(ctx context.Context, userID, id uuid.UUID, update *models.InvestmentUpdate) (*models.Investment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

const investmentColumns = `id, user_id, name, type, invested_amount, current_value, purchase_date, notes, created_at, updated_at`

type investmentRepository struct {
	pool *pgxpool.Pool
}

func NewInvestmentRepository(pool *pgxpool.Pool) InvestmentRepository {
	return &investmentRepository{pool: pool}
}

func scanInvestment(row pgx.Row) (*models.Investment, error) {
	var inv models.Investment
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.Name, &inv.Type,
		&inv.InvestedAmount, &inv.CurrentValue, &inv.PurchaseDate,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

func (r *investmentRepository) Create(ctx context.Context, inv *models.Investment) error {
	query := `
		INSERT INTO investments (` + investmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	_, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query,
		inv.ID, inv.UserID, inv.Name, inv.Type,
		inv.InvestedAmount, inv.CurrentValue, inv.PurchaseDate,
		inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	return err
}

func (r *investmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID, investmentType *string) ([]models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = $1`
	args := []interface{}{userID}
	if investmentType != nil {
		query += " AND type = $2"
		args = append(args, *investmentType)
	}
	query += " ORDER BY purchase_date DESC"

	rows, err := GetTxOrPool(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	investments := []models.Investment{}
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, err
		}
		investments = append(investments, *inv)
	}
	return investments, rows.Err()
}

func (r *investmentRepository) Update(ctx context.Context, userID, id uuid.UUID, update *models.InvestmentUpdate) (*models.Investment, error) {
	query := `
		UPDATE investments SET
			name = COALESCE($3, name),
			type = COALESCE($4, type),
			invested_amount = COALESCE($5, invested_amount),
			current_value = COALESCE($6, current_value),
			purchase_date = COALESCE($7, purchase_date),
			notes = COALESCE($8, notes),
			updated_at = $9
		WHERE id = $1 AND user_id = $2
		RETURNING ` + investmentColumns

	return scanInvestment(GetTxOrPool(ctx, r.pool).QueryRow(ctx, query,
		id, userID,
		update.Name, update.Type, update.InvestedAmount, update.CurrentValue,
		update.PurchaseDate.Ptr(), update.Notes,
		time.Now(),
	))
}

func (r *investmentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM investments WHERE id = $1 AND user_id = $2`
	tag, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
