package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// RunMigrations применяет схему; все statements идемпотентны
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logrus.Logger) error {
	log.Info("running database migrations")

	migrations := []string{
		migrationCreateGoals,
		migrationCreateTransactions,
		migrationCreateInvestments,
		migrationRelaxColumnTypes,
		migrationCreateIndexes,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.WithField("count", len(migrations)).Info("migrations completed")
	return nil
}

const migrationCreateGoals = `
CREATE TABLE IF NOT EXISTS goals (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    name TEXT NOT NULL,
    target_amount NUMERIC NOT NULL CHECK (target_amount > 0),
    current_amount NUMERIC NOT NULL DEFAULT 0,
    deadline TIMESTAMP WITH TIME ZONE NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    icon TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'active',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    completed_at TIMESTAMP WITH TIME ZONE
);
`

const migrationCreateTransactions = `
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    type VARCHAR(20) NOT NULL,
    amount NUMERIC NOT NULL CHECK (amount > 0),
    category TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    date TIMESTAMP WITH TIME ZONE NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);
`

const migrationCreateInvestments = `
CREATE TABLE IF NOT EXISTS investments (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    invested_amount NUMERIC NOT NULL,
    current_value NUMERIC NOT NULL,
    purchase_date TIMESTAMP WITH TIME ZONE NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
);
`

// Ранние схемы ограничивали длину строк и округляли суммы до копеек.
// Для уже TEXT/NUMERIC колонок ALTER ничего не меняет.
const migrationRelaxColumnTypes = `
ALTER TABLE goals
    ALTER COLUMN name TYPE TEXT,
    ALTER COLUMN target_amount TYPE NUMERIC,
    ALTER COLUMN current_amount TYPE NUMERIC,
    ALTER COLUMN category TYPE TEXT,
    ALTER COLUMN icon TYPE TEXT,
    ALTER COLUMN color TYPE TEXT;
ALTER TABLE transactions
    ALTER COLUMN amount TYPE NUMERIC,
    ALTER COLUMN category TYPE TEXT,
    ALTER COLUMN description TYPE TEXT;
ALTER TABLE investments
    ALTER COLUMN name TYPE TEXT,
    ALTER COLUMN type TYPE TEXT,
    ALTER COLUMN invested_amount TYPE NUMERIC,
    ALTER COLUMN current_value TYPE NUMERIC;
`

const migrationCreateIndexes = `
CREATE INDEX IF NOT EXISTS idx_goals_user_id ON goals(user_id);
CREATE INDEX IF NOT EXISTS idx_goals_user_created ON goals(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE INDEX IF NOT EXISTS idx_investments_user_id ON investments(user_id);
`
