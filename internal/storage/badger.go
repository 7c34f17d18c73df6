package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/campusgate/exitpass/internal/pkg/logger"
)

// BadgerConfig holds configuration for the embedded BadgerDB store.
type BadgerConfig struct {
	// Path is the directory for the database files. Ignored when
	// InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool
}

// badgerStore implements Store over an embedded BadgerDB instance.
type badgerStore struct {
	db *badger.DB
}

// badgerLogger adapts our zerolog-backed logger to BadgerDB's Logger interface.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

func (badgerLogger) Warningf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

func (badgerLogger) Infof(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

func (badgerLogger) Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

// OpenBadger opens (creating if necessary) a BadgerDB store.
func OpenBadger(cfg BadgerConfig) (Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("badger store requires a path")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(badgerLogger{})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}

	return &badgerStore{db: db}, nil
}

// OpenBadgerInMemory opens a throwaway in-memory store for tests.
func OpenBadgerInMemory() (Store, error) {
	return OpenBadger(BadgerConfig{InMemory: true})
}

func (s *badgerStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (s *badgerStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (s *badgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
