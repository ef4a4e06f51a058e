package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fintracker/finance-tracker/internal/models"
	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/google/uuid"
)

const investmentColumns = `id, user_id, name, type, invested_amount, current_value, purchase_date, notes, created_at, updated_at`

type investmentRepository struct {
	db        *sql.DB
	txManager repository.TxManager
}

func NewInvestmentRepository(db *sql.DB, txManager repository.TxManager) repository.InvestmentRepository {
	return &investmentRepository{db: db, txManager: txManager}
}

func scanInvestment(row rowScanner) (*models.Investment, error) {
	var (
		inv                         models.Investment
		purchased, created, updated int64
	)
	err := row.Scan(
		&inv.ID, &inv.UserID, &inv.Name, &inv.Type,
		&inv.InvestedAmount, &inv.CurrentValue, &purchased,
		&inv.Notes, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	inv.PurchaseDate = fromNanos(purchased)
	inv.CreatedAt = fromNanos(created)
	inv.UpdatedAt = fromNanos(updated)
	return &inv, nil
}

func (r *investmentRepository) Create(ctx context.Context, inv *models.Investment) error {
	query := `INSERT INTO investments (` + investmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	_, err := getTxOrDB(ctx, r.db).ExecContext(ctx, query,
		inv.ID, inv.UserID, inv.Name, inv.Type,
		inv.InvestedAmount, inv.CurrentValue, toNanos(inv.PurchaseDate),
		inv.Notes, toNanos(inv.CreatedAt), toNanos(inv.UpdatedAt),
	)
	return err
}

func (r *investmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID, investmentType *string) ([]models.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investments WHERE user_id = ?`
	args := []interface{}{userID}
	if investmentType != nil {
		query += " AND type = ?"
		args = append(args, *investmentType)
	}
	query += " ORDER BY purchase_date DESC, rowid DESC"

	rows, err := getTxOrDB(ctx, r.db).QueryContext(ctx, query, args...)
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
	var out *models.Investment
	err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
		inv, err := scanInvestment(getTxOrDB(ctx, r.db).QueryRowContext(ctx,
			`SELECT `+investmentColumns+` FROM investments WHERE id = ? AND user_id = ?`, id, userID))
		if err != nil {
			return err
		}

		update.Apply(inv)
		inv.UpdatedAt = time.Now()

		query := `
			UPDATE investments SET
				name = ?, type = ?, invested_amount = ?, current_value = ?,
				purchase_date = ?, notes = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`
		_, err = getTxOrDB(ctx, r.db).ExecContext(ctx, query,
			inv.Name, inv.Type, inv.InvestedAmount, inv.CurrentValue,
			toNanos(inv.PurchaseDate), inv.Notes, toNanos(inv.UpdatedAt),
			id, userID,
		)
		if err != nil {
			return err
		}
		out = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *investmentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := getTxOrDB(ctx, r.db).ExecContext(ctx, `DELETE FROM investments WHERE id = ? AND user_id = ?`, id, userID)
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
