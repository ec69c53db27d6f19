package memory

import (
	"context"
	"testing"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PersistLoadReturnsFreshInstances(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	place := entity.NewPlace("C1", "U1", "Loft")
	place.LinkAmenity("A1")
	require.NoError(t, store.Persist(ctx, []entity.Entity{place}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[entity.KeyOf(place)]
	require.NotNil(t, got)
	assert.NotSame(t, place, got)
	assert.Equal(t, place.ToRecord(), got.ToRecord())

	// Mutating the live instance does not leak into the durable record.
	place.LinkAmenity("A2")
	rec, ok := store.Record(entity.KindPlace, place.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"A1"}, rec["amenity_ids"])
}

func TestStore_RemoveAbsentIsNoop(t *testing.T) {
	store := NewStore()

	assert.NoError(t, store.Remove(context.Background(), entity.KindUser, "missing"))
}

func TestStore_ClosedIsUnavailable(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err := store.LoadAll(ctx)
	assert.ErrorIs(t, err, repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, store.Persist(ctx, nil), repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, store.Remove(ctx, entity.KindUser, "x"), repository.ErrAdapterUnavailable)
}

func TestStore_LoadAllRejectsUnknownClass(t *testing.T) {
	store := NewStore(entity.Record{entity.ClassKey: "Spaceship", "id": "X1"})

	_, err := store.LoadAll(context.Background())
	assert.ErrorIs(t, err, repository.ErrMalformedRecord)
}
