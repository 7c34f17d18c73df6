package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusgate/exitpass/internal/config"
	"github.com/campusgate/exitpass/internal/pkg/logger"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_blobs (
	key   TEXT PRIMARY KEY,
	value BYTEA NOT NULL
)
`

// postgresStore implements Store over a single key/value table through a
// pgx connection pool.
type postgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to PostgreSQL and ensures the blob table exists.
func OpenPostgres(ctx context.Context, cfg *config.Config) (Store, error) {
	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.Storage.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.Storage.MaxIdleConns)

	pool, err := pgxpool.NewWithConfig(connCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}

	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(connCtx, kvSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure kv table: %w", err)
	}

	logger.Info().
		Str("host", cfg.Storage.Host).
		Str("dbname", cfg.Storage.DBName).
		Msg("Connected to PostgreSQL blob store")

	return &postgresStore{pool: pool}, nil
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO kv_blobs (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM kv_blobs WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *postgresStore) Close() error {
	s.pool.Close()
	return nil
}
