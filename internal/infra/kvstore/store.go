package kvstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Store is the persistent key-value substrate for guest claim ledgers and chat history.
// Get returns an infra.KindNotFound error for absent keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

func ValidateDriver(driver string) error {
	switch strings.ToLower(driver) {
	case DriverPostgres, DriverRedis, DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", driver)
	}
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
