package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

/*
TestRepository_RoundTrip exercises the SQLite sink against a real temp
database: DDL via Exec, batched inserts via CopyFrom, and a read-back to
confirm the rows landed.
*/
func TestRepository_RoundTrip(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	repo, err := NewRepository(ctx, dsn)
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Close()

	if err := repo.Exec(ctx, "CREATE TABLE t (group_key TEXT, total INTEGER, rate REAL)"); err != nil {
		t.Fatalf("Exec DDL: %v", err)
	}

	rows := [][]any{
		{"Sales", int64(10), 30.0},
		{"HR", int64(4), 25.0},
		{nil, int64(1), 0.0},
	}
	n, err := repo.CopyFrom(ctx, "t", []string{"group_key", "total", "rate"}, rows)
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 3 {
		t.Fatalf("inserted=%d; want 3", n)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open for read-back: %v", err)
	}
	defer db.Close()
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM t").Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("count=%d; want 3", count)
	}
}

/*
TestRepository_Errors verifies argument validation: an empty DSN is
rejected, a row width mismatch aborts the transaction, and empty batches
are a no-op.
*/
func TestRepository_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewRepository(ctx, "  "); err == nil {
		t.Fatalf("want error for empty DSN")
	}

	repo, err := NewRepository(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	defer repo.Close()

	if err := repo.Exec(ctx, "CREATE TABLE t (a TEXT, b TEXT)"); err != nil {
		t.Fatalf("Exec: %v", err)
	}

	if n, err := repo.CopyFrom(ctx, "t", []string{"a", "b"}, nil); err != nil || n != 0 {
		t.Fatalf("empty batch: n=%d err=%v", n, err)
	}
	if _, err := repo.CopyFrom(ctx, "t", []string{"a", "b"}, [][]any{{"only-one"}}); err == nil {
		t.Fatalf("want error for row width mismatch")
	}
	if _, err := repo.CopyFrom(ctx, "t", nil, [][]any{{"x"}}); err == nil {
		t.Fatalf("want error for empty columns")
	}
}
