//go:build unit || e2e

package dbtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func SeedKey(t *testing.T, db DBLike, key string, value []byte) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"INSERT INTO kv_store (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value",
		key, value)
	require.NoError(t, err)
}

// ReadKey returns the stored value, or nil when the key does not exist.
func ReadKey(t *testing.T, db DBLike, key string) []byte {
	t.Helper()

	var value []byte
	err := db.QueryRow(context.Background(), "SELECT value FROM kv_store WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	require.NoError(t, err)
	return value
}

func CountKeys(t *testing.T, db DBLike, prefix string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM kv_store WHERE starts_with(key, $1)", prefix).Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties the key-value table between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE kv_store")
	return err
}
