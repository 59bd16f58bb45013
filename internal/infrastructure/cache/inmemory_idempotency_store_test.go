package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("first mark returns true", func(t *testing.T) {
		marked, err := store.MarkProcessed(ctx, "key-1", time.Minute)
		require.NoError(t, err)
		assert.True(t, marked)
	})

	t.Run("duplicate mark returns false", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "key-2", time.Minute)
		require.NoError(t, err)

		marked, err := store.MarkProcessed(ctx, "key-2", time.Minute)
		require.NoError(t, err)
		assert.False(t, marked)
	})

	t.Run("expired key can be marked again", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "key-3", time.Nanosecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		marked, err := store.MarkProcessed(ctx, "key-3", time.Minute)
		require.NoError(t, err)
		assert.True(t, marked)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	t.Run("unknown key is not processed", func(t *testing.T) {
		processed, err := store.IsProcessed(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("marked key is processed", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "known", time.Minute)
		require.NoError(t, err)

		processed, err := store.IsProcessed(ctx, "known")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired key is not processed", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "short-lived", time.Nanosecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		processed, err := store.IsProcessed(ctx, "short-lived")
		require.NoError(t, err)
		assert.False(t, processed)
	})
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	defer store.Close()
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "stale", time.Nanosecond)
	require.NoError(t, err)
	_, err = store.MarkProcessed(ctx, "fresh", time.Hour)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewInMemoryIdempotencyStore()

	require.NoError(t, store.Close())
	// Close is idempotent
	require.NoError(t, store.Close())
}
