//go:build unit

package kvstore_test

import (
	"context"
	"errors"
	"testing"

	"stamp-rally/internal/infra"
	"stamp-rally/internal/infra/kvstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

type fakeDB struct {
	row      fakeRow
	execErr  error
	execTag  string
	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return pgconn.NewCommandTag(f.execTag), f.execErr
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func TestPostgresStoreGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{value: []byte("v")}}
		got, err := kvstore.NewPostgresStore(db, nil).Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", string(got))
		assert.Equal(t, []any{"k"}, db.lastArgs)
	})

	t.Run("no rows maps to NotFound", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: pgx.ErrNoRows}}
		_, err := kvstore.NewPostgresStore(db, nil).Get(ctx, "k")
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("driver error maps to StoreFailure", func(t *testing.T) {
		db := &fakeDB{row: fakeRow{err: errors.New("conn reset")}}
		_, err := kvstore.NewPostgresStore(db, nil).Get(ctx, "k")
		assert.True(t, infra.IsKind(err, infra.KindStoreFailure))
	})
}

func TestPostgresStoreWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("set upserts", func(t *testing.T) {
		db := &fakeDB{execTag: "INSERT 0 1"}
		require.NoError(t, kvstore.NewPostgresStore(db, nil).Set(ctx, "k", []byte("v")))
		assert.Contains(t, db.lastSQL, "ON CONFLICT (key)")
	})

	t.Run("delete without keys skips the round trip", func(t *testing.T) {
		db := &fakeDB{}
		require.NoError(t, kvstore.NewPostgresStore(db, nil).Delete(ctx))
		assert.Empty(t, db.lastSQL)
	})

	t.Run("delete prefix reports affected rows", func(t *testing.T) {
		db := &fakeDB{execTag: "DELETE 3"}
		n, err := kvstore.NewPostgresStore(db, nil).DeletePrefix(ctx, "guest:a:")
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []any{"guest:a:"}, db.lastArgs)
	})

	t.Run("exec failure", func(t *testing.T) {
		db := &fakeDB{execErr: errors.New("read only")}
		err := kvstore.NewPostgresStore(db, nil).Set(ctx, "k", []byte("v"))
		assert.True(t, infra.IsKind(err, infra.KindStoreFailure))
	})
}
