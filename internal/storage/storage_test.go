package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "key", []byte("value")))

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), value)

	// Overwrite replaces the whole blob
	require.NoError(t, store.Set(ctx, "key", []byte("v2")))
	value, ok, err = store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v2"), value)

	require.NoError(t, store.Delete(ctx, "key"))
	_, ok, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is a no-op
	require.NoError(t, store.Delete(ctx, "key"))
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	input := []byte("original")
	require.NoError(t, store.Set(ctx, "key", input))
	input[0] = 'X'

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("original"), value)
}

func TestBadgerStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBadgerInMemory()
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "key", []byte("value")))

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), value)

	require.NoError(t, store.Delete(ctx, "key"))
	_, ok, err = store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "key", []byte("durable")))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("durable"), value)
}

func TestGetHonorsContextCancellation(t *testing.T) {
	store := NewMemoryStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := store.Get(ctx, "key")
	assert.Error(t, err)
}
