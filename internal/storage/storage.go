// Package storage provides the named-blob key-value store the repositories
// persist into. Each collection lives under one fixed key as a single blob;
// a write replaces the whole blob.
package storage

import (
	"context"
	"fmt"

	"github.com/campusgate/exitpass/internal/config"
)

// Store is a synchronous blob store keyed by name.
type Store interface {
	// Get returns the blob stored under key. The bool reports presence;
	// a missing key is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set overwrites the blob stored under key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the blob stored under key. Deleting a missing key
	// is a no-op.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying resources.
	Close() error
}

// Open creates the store selected by the configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "badger":
		return OpenBadger(BadgerConfig{Path: cfg.Storage.Path})
	case "postgres":
		return OpenPostgres(ctx, cfg)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
