package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing-feed-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKVStore implements KVStorePort on a single key-value table,
// the durable tier when the deployment already runs Postgres.
type PostgresKVStore struct {
	pool *pgxpool.Pool
}

const ensureTableSQL = `
CREATE TABLE IF NOT EXISTS feed_kv (
    key        TEXT PRIMARY KEY,
    value      BYTEA NOT NULL,
    expires_at TIMESTAMPTZ
)`

// NewPostgresKVStore ensures the table exists so a fresh database works
// without a migration step.
func NewPostgresKVStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresKVStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgx pool cannot be nil")
	}
	if _, err := pool.Exec(ctx, ensureTableSQL); err != nil {
		return nil, fmt.Errorf("failed to ensure feed_kv table: %w", err)
	}
	return &PostgresKVStore{pool: pool}, nil
}

func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM feed_kv
		 WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())`,
		key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: postgres get %s: %v", domain.ErrNetworkUnavailable, key, err)
	}
	return value, nil
}

func (s *PostgresKVStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt interface{}
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO feed_kv (key, value, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("%w: postgres set %s: %v", domain.ErrNetworkUnavailable, key, err)
	}
	return nil
}

func (s *PostgresKVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM feed_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("%w: postgres delete %s: %v", domain.ErrNetworkUnavailable, key, err)
	}
	return nil
}
