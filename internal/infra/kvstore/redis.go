package kvstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stamp-rally/internal/infra"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// ConnectRedis accepts both redis:// URLs and bare host:port addresses.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type RedisStore struct {
	client redis.UniversalClient
	logger *slog.Logger
}

func NewRedisStore(client redis.UniversalClient, l *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger(l)}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapStoreErr(s.logger, infra.KindNotFound, "key not found", nil)
		}
		return nil, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to read key", err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to write key", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to delete keys", err)
	}
	return nil
}

func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, nil
	}

	deleted := 0
	iter := s.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanBatch).Iterator()
	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := s.client.Del(ctx, batch...).Result()
		if err != nil {
			return err
		}
		deleted += int(n)
		batch = batch[:0]
		return nil
	}

	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return deleted, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to delete key prefix", err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to scan key prefix", err)
	}
	if err := flush(); err != nil {
		return deleted, infra.WrapStoreErr(s.logger, infra.KindStoreFailure, "failed to delete key prefix", err)
	}
	return deleted, nil
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
