package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, type, amount, category, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.CreatedAt = time.Now()

	_, err := getTxOrDB(ctx, r.db).ExecContext(ctx, query,
		tx.ID, tx.UserID, string(tx.Type), tx.Amount,
		tx.Category, tx.Description, toNanos(tx.Date), toNanos(tx.CreatedAt),
	)
	return err
}

func (r *transactionRepository) GetByUserID(ctx context.Context, userID uuid.UUID, filter *models.TransactionFilter) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount, category, description, date, created_at
		FROM transactions WHERE user_id = ?`
	args := []interface{}{userID}

	if filter != nil {
		if filter.Type != nil {
			query += " AND type = ?"
			args = append(args, string(*filter.Type))
		}
		if filter.StartDate != nil {
			query += " AND date >= ?"
			args = append(args, toNanos(*filter.StartDate))
		}
		if filter.EndDate != nil {
			query += " AND date <= ?"
			args = append(args, toNanos(*filter.EndDate))
		}
	}
	query += " ORDER BY date DESC, rowid DESC"

	rows, err := getTxOrDB(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var (
			t             models.Transaction
			date, created int64
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category, &t.Description, &date, &created); err != nil {
			return nil, err
		}
		t.Date = fromNanos(date)
		t.CreatedAt = fromNanos(created)
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := getTxOrDB(ctx, r.db).ExecContext(ctx, `DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
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
