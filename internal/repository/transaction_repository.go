package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByUserID(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]models.Transaction, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type transactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) TransactionRepository {
	return &transactionRepository{pool: pool}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()

	_, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query,
		tx.ID, tx.UserID, tx.Type, tx.Amount,
		tx.Category, tx.Description, tx.Date, tx.CreatedAt,
	)
	return err
}

func (r *transactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, date, created_at
		FROM transactions
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	argNum := 2

	if filter != nil {
		if filter.Type != nil {
			query += fmt.Sprintf(" AND type = $%d", argNum)
			args = append(args, *filter.Type)
			argNum++
		}
		if filter.StartDate != nil {
			query += fmt.Sprintf(" AND date >= $%d", argNum)
			args = append(args, *filter.StartDate)
			argNum++
		}
		if filter.EndDate != nil {
			query += fmt.Sprintf(" AND date <= $%d", argNum)
			args = append(args, *filter.EndDate)
			argNum++
		}
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := GetTxOrPool(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Type, &t.Amount,
			&t.Category, &t.Description, &t.Date, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM transactions WHERE id = $1 AND user_id = $2`
	tag, err := GetTxOrPool(ctx, r.pool).Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
