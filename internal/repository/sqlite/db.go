// Package sqlite - файловое хранилище для однопроцессного развертывания (STORAGE_BACKEND=sqlite).
// Суммы хранятся строками decimal, время - наносекундами Unix.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fintracker/finance-tracker/internal/repository"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Open создает файл БД при необходимости и применяет миграции.
// Соединение одно: SQLite все равно сериализует запись, а так транзакции
// не получают SQLITE_BUSY и read-modify-write в AddFunds остается атомарным.
func Open(ctx context.Context, path string, log *logrus.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(path, log); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

// RunMigrations открывает отдельное соединение: m.Close закрывает переданную БД
func RunMigrations(path string, log *logrus.Logger) error {
	migrateDB, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := migratesqlite.WithInstance(migrateDB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("sqlite migrations applied")
	return nil
}

func NewRepositories(db *sql.DB) *repository.Repositories {
	txManager := NewTxManager(db)
	return &repository.Repositories{
		TxManager:   txManager,
		Goal:        NewGoalRepository(db, txManager),
		Transaction: NewTransactionRepository(db),
		Investment:  NewInvestmentRepository(db, txManager),
	}
}

func toNanos(t time.Time) int64 {
	return t.UnixNano()
}

func fromNanos(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}
