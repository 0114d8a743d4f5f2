package kvstore

import (
	"context"
	"errors"
	"log/slog"

	"stamp-rally/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool the store needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	getSQL          = `SELECT value FROM kv_store WHERE key = $1`
	upsertSQL       = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteSQL       = `DELETE FROM kv_store WHERE key = ANY($1)`
	deletePrefixSQL = `DELETE FROM kv_store WHERE starts_with(key, $1)`
)

type PostgresStore struct {
	db     DBTX
	logger *slog.Logger
}

func NewPostgresStore(db DBTX, l *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger(l)}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, getSQL, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr(s.logger, infra.KindNotFound, "key not found", nil)
		}
		return nil, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to read key", err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(ctx, upsertSQL, key, value); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to write key", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.db.Exec(ctx, deleteSQL, keys); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to delete keys", err)
	}
	return nil
}

func (s *PostgresStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}
	tag, err := s.db.Exec(ctx, deletePrefixSQL, prefix)
	if err != nil {
		return 0, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to delete key prefix", err)
	}
	return int(tag.RowsAffected()), nil
}
