package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSnapshotStoreContract runs a suite of tests to verify that a
// SnapshotStore implementation adheres to the defined interface contract.
func RunSnapshotStoreContract(t *testing.T, store SnapshotStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		snapshot := []byte(`{"counter":42}`)

		err := store.Save(ctx, key, snapshot)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, snapshot, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, []byte(`{"counter":1}`)))
		require.NoError(t, store.Save(ctx, key, []byte(`{"counter":2}`)))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"counter":2}`), loaded, "Save should overwrite the previous snapshot")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, ErrSnapshotNotFound)
	})

	t.Run("Caller Mutation Isolation", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, []byte(`original`)))

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		for i := range loaded {
			loaded[i] = 'x'
		}

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte(`original`), again, "mutating a loaded snapshot must not affect the stored value")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, []byte(`bye`)))

		err := store.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, key)
		assert.ErrorIs(t, err, ErrSnapshotNotFound, "Load after Delete should return ErrSnapshotNotFound")
	})

	t.Run("Delete Non-Existent", func(t *testing.T) {
		err := store.Delete(ctx, "non-existent-"+key)
		assert.NoError(t, err, "Delete of a missing key should be a no-op")
	})
}
