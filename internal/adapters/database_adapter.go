package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/outpost-tools/rostering-service/internal/database"
	"github.com/outpost-tools/rostering-service/internal/storage"
)

// DatabaseAdapter adapts database.DB to storage.DatabaseInterface.
type DatabaseAdapter struct {
	db *database.DB
}

// NewDatabaseAdapter creates the database adapter.
func NewDatabaseAdapter(db *database.DB) storage.DatabaseInterface {
	return &DatabaseAdapter{db: db}
}

// QueryRow runs a query expected to return a single row.
func (a *DatabaseAdapter) QueryRow(ctx context.Context, query string, args ...interface{}) storage.Row {
	return &rowAdapter{row: a.db.Pool().QueryRow(ctx, query, args...)}
}

// Query runs a query returning multiple rows.
func (a *DatabaseAdapter) Query(ctx context.Context, query string, args ...interface{}) (storage.Rows, error) {
	rows, err := a.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return &rowsAdapter{rows: rows}, nil
}

// Exec runs a statement without returning rows.
func (a *DatabaseAdapter) Exec(ctx context.Context, query string, args ...interface{}) error {
	_, err := a.db.Pool().Exec(ctx, query, args...)
	return err
}

// Health checks database connectivity.
func (a *DatabaseAdapter) Health(ctx context.Context) error {
	return a.db.Health(ctx)
}

type rowAdapter struct {
	row pgx.Row
}

func (r *rowAdapter) Scan(dest ...interface{}) error {
	return r.row.Scan(dest...)
}

type rowsAdapter struct {
	rows pgx.Rows
}

func (r *rowsAdapter) Next() bool {
	return r.rows.Next()
}

func (r *rowsAdapter) Scan(dest ...interface{}) error {
	return r.rows.Scan(dest...)
}

func (r *rowsAdapter) Err() error {
	return r.rows.Err()
}

func (r *rowsAdapter) Close() {
	r.rows.Close()
}
