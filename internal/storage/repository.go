// Package storage persists the cleaned employee table and the aggregate
// result tables for the dashboard. The Repository interface keeps the
// pipeline driver free of database drivers; concrete backends live in
// subpackages.
package storage

import (
	"context"
	"fmt"

	"attrition/internal/storage/postgres"
	"attrition/internal/storage/sqlite"
)

// Repository is the minimal sink interface the pipeline writes through.
type Repository interface {
	// Exec runs a statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	// CopyFrom bulk-inserts rows into table. len(row) must equal
	// len(columns) for every row.
	CopyFrom(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Kind string // "sqlite" or "postgres"
	DSN  string
}

// New constructs the configured backend.
func New(ctx context.Context, cfg Config) (Repository, error) {
	switch cfg.Kind {
	case "", "sqlite":
		return sqlite.NewRepository(ctx, cfg.DSN)
	case "postgres":
		return postgres.NewRepository(ctx, cfg.DSN)
	}
	return nil, fmt.Errorf("storage: unsupported kind %q", cfg.Kind)
}
