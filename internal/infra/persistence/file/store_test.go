package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

const docKey = "file.json"

func TestStore_EmptyBucketLoadsNothing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := New(bucket, docKey, nil)
	loaded, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_PersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := New(bucket, docKey, nil)
	_, err := store.LoadAll(ctx)
	require.NoError(t, err)

	state := entity.NewState("California")
	city := entity.NewCity(state.ID, "San Francisco")
	user := entity.NewUser("host@hbnb.io", "$2a$04$hash")
	place := entity.NewPlace(city.ID, user.ID, "Nest")
	place.NumberRooms = 3
	place.Latitude = 37.77
	place.LinkAmenity("A1")
	all := []entity.Entity{state, city, user, place}
	require.NoError(t, store.Persist(ctx, all))
	require.NoError(t, store.Close())

	// A second store over the same bucket plays the restarted process.
	reopened := New(bucket, docKey, nil)
	loaded, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, len(all))

	for _, e := range all {
		got, ok := loaded[entity.KeyOf(e)]
		require.True(t, ok, "missing %s", entity.KeyOf(e))
		assert.Equal(t, e.ToRecord(), got.ToRecord())
	}
}

func TestStore_DocumentIsKeyedByKindAndID(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := New(bucket, docKey, nil)
	amenity := entity.NewAmenity("Wifi")
	require.NoError(t, store.Persist(ctx, []entity.Entity{amenity}))

	data, err := bucket.ReadAll(ctx, docKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Amenity.`+amenity.ID+`"`)
	assert.Contains(t, string(data), `"__class__":"Amenity"`)
}

func TestStore_RemoveRewritesDocument(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := New(bucket, docKey, nil)
	kept := entity.NewAmenity("Wifi")
	gone := entity.NewAmenity("Pool")
	require.NoError(t, store.Persist(ctx, []entity.Entity{kept, gone}))

	require.NoError(t, store.Remove(ctx, entity.KindAmenity, gone.ID))
	require.NoError(t, store.Remove(ctx, entity.KindAmenity, "absent"))

	loaded, err := New(bucket, docKey, nil).LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Contains(t, loaded, entity.KeyOf(kept))
}

func TestStore_MalformedDocument(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{`},
		{"unknown class", `{"Ship.1":{"__class__":"Ship","id":"1"}}`},
		{"missing timestamps", `{"State.1":{"__class__":"State","id":"1","name":"x"}}`},
		{"key mismatch", `{"State.2":{"__class__":"State","id":"1","name":"x",` +
			`"created_at":"2017-03-25T02:17:06.000000","updated_at":"2017-03-25T02:17:06.000000"}}`},
		{"updated before created", `{"State.1":{"__class__":"State","id":"1","name":"x",` +
			`"created_at":"2017-03-25T02:17:06.000000","updated_at":"2017-03-24T02:17:06.000000"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, bucket.WriteAll(ctx, docKey, []byte(tt.doc), nil))

			_, err := New(bucket, docKey, nil).LoadAll(ctx)
			assert.ErrorIs(t, err, repository.ErrMalformedRecord)
		})
	}
}

func TestStore_OpenFileBucket(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(ctx, "file://"+filepath.ToSlash(dir), docKey, nil)
	require.NoError(t, err)

	state := entity.NewState("Oregon")
	require.NoError(t, store.Persist(ctx, []entity.Entity{state}))
	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close is idempotent")

	_, err = os.Stat(filepath.Join(dir, docKey))
	require.NoError(t, err)

	_, err = store.LoadAll(ctx)
	assert.ErrorIs(t, err, repository.ErrAdapterUnavailable)

	reopened, err := Open(ctx, "file://"+filepath.ToSlash(dir), docKey, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	loaded, err := reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, loaded, entity.KeyOf(state))
}
