package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-local-sync/models"
)

func TestSyncMetaRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSyncMetaRepository(newTestDB(t))

	// A never-synced collection yields a zero row, not an error.
	meta, err := repo.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.True(t, meta.FirstSync())

	require.NoError(t, repo.Put(ctx, models.CollectionMetadata{
		Collection:   models.CollectionHistory,
		CollectionID: "incarnation-1",
		LastSync:     4200,
	}))

	meta, err = repo.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.False(t, meta.FirstSync())
	assert.Equal(t, "incarnation-1", meta.CollectionID)
	assert.Equal(t, int64(4200), meta.LastSync)

	// Put replaces in place.
	require.NoError(t, repo.Put(ctx, models.CollectionMetadata{
		Collection:   models.CollectionHistory,
		CollectionID: "incarnation-2",
		LastSync:     9000,
	}))

	meta, err = repo.Get(ctx, models.CollectionHistory)
	require.NoError(t, err)
	assert.Equal(t, "incarnation-2", meta.CollectionID)
}

func TestSyncMetaRepository_Reset(t *testing.T) {
	ctx := context.Background()
	repo := NewSyncMetaRepository(newTestDB(t))

	require.NoError(t, repo.Put(ctx, models.CollectionMetadata{
		Collection:   models.CollectionBookmarks,
		CollectionID: "incarnation-1",
		LastSync:     4200,
	}))
	require.NoError(t, repo.Reset(ctx, models.CollectionBookmarks))

	meta, err := repo.Get(ctx, models.CollectionBookmarks)
	require.NoError(t, err)
	assert.True(t, meta.FirstSync())

	// Resetting an absent row is not an error.
	require.NoError(t, repo.Reset(ctx, models.CollectionBookmarks))
}

func TestStorages_Records(t *testing.T) {
	storages, err := newStoragesFromDB(newTestDB(t))
	require.NoError(t, err)

	for _, collection := range models.AllCollections() {
		repo, err := storages.Records(collection)
		require.NoError(t, err)
		assert.Equal(t, collection, repo.Collection())
	}

	_, err = storages.Records(models.Collection("passwords"))
	assert.Error(t, err)
}
