package sql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Roma7-7-7/finnish-word-bot/internal/dal"
)

type (
	Client interface {
		ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
		QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
		QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	}

	SQLiteRepository struct {
		db     *sql.DB
		client Client
		log    *slog.Logger
	}
)

func NewSQLiteRepository(db *sql.DB, log *slog.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: db, client: db, log: log}
}

func (r *SQLiteRepository) Transact(ctx context.Context, txFunc func(r dal.Repository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // ignore rollback errors

	if err = txFunc(&SQLiteRepository{db: r.db, client: tx, log: r.log}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Migrate(ctx context.Context) error {
	if _, err := r.client.ExecContext(ctx, dal.CreateWordsTableQuery); err != nil {
		return fmt.Errorf("create words table: %w", err)
	}
	return nil
}
