package session

import (
	"context"
	"strings"
	"testing"
	"time"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
	"hbnb/internal/infra/metrics"
	"hbnb/internal/infra/persistence/memory"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, store repository.StoreAdapter) *Session {
	t.Helper()

	s, err := Open(context.Background(), store, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func withID[T entity.Entity](e T, id string) T {
	e.Meta().ID = id

	return e
}

func nestScenario(t *testing.T, s *Session) {
	t.Helper()

	require.NoError(t, s.New(withID(entity.NewState("California"), "S1")))
	require.NoError(t, s.New(withID(entity.NewCity("S1", "San Francisco"), "C1")))
	require.NoError(t, s.New(withID(entity.NewPlace("C1", "U1", "Nest"), "P1")))
}

func TestSession_NewThenGetReturnsSameInstance(t *testing.T) {
	s := openSession(t, memory.NewStore())

	state := entity.NewState("Nevada")
	require.NoError(t, s.New(state))

	got, err := s.Get(entity.KindState, state.ID)
	require.NoError(t, err)
	assert.Same(t, state, got)

	typed, err := repository.GetAs[*entity.State](s, state.ID)
	require.NoError(t, err)
	assert.Same(t, state, typed)
}

func TestSession_GetMissing(t *testing.T) {
	s := openSession(t, memory.NewStore())

	_, err := s.Get(entity.KindPlace, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSession_GetByNameUnknownKind(t *testing.T) {
	s := openSession(t, memory.NewStore())

	_, err := s.GetByName("Spaceship", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrUnknownKind)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	_, err = s.AllByName("Spaceship")
	assert.ErrorIs(t, err, repository.ErrUnknownKind)
}

func TestSession_NewDuplicateLeavesFirstUntouched(t *testing.T) {
	s := openSession(t, memory.NewStore())

	first := withID(entity.NewAmenity("Wifi"), "A1")
	second := withID(entity.NewAmenity("Pool"), "A1")

	require.NoError(t, s.New(first))
	err := s.New(second)
	assert.ErrorIs(t, err, repository.ErrDuplicateIdentity)

	got, err := s.Get(entity.KindAmenity, "A1")
	require.NoError(t, err)
	assert.Same(t, first, got)
	assert.Equal(t, "Wifi", got.(*entity.Amenity).Name)
}

func TestSession_AllFiltersByKindAndReadsYourWrites(t *testing.T) {
	store := memory.NewStore()
	s := openSession(t, store)

	nestScenario(t, s)

	places, err := s.All(entity.KindPlace)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "P1", places[0].GetID())
	assert.Zero(t, store.Len(), "nothing is durable before save")

	all, err := s.All("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byName, err := s.AllByName("City")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "C1", byName[0].GetID())
}

func TestSession_AllOrderIsStable(t *testing.T) {
	s := openSession(t, memory.NewStore())

	for _, name := range []string{"Wifi", "Pool", "Gym", "Sauna"} {
		require.NoError(t, s.New(entity.NewAmenity(name)))
	}

	first, err := s.All(entity.KindAmenity)
	require.NoError(t, err)
	second, err := s.All(entity.KindAmenity)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestSession_SaveRestartRoundTrip(t *testing.T) {
	store := memory.NewStore()
	s, err := Open(context.Background(), store, nil, nil)
	require.NoError(t, err)

	nestScenario(t, s)
	place, err := repository.GetAs[*entity.Place](s, "P1")
	require.NoError(t, err)
	place.LinkAmenity("A1")
	place.PriceByNight = 120
	want := place.ToRecord()

	require.NoError(t, s.Save(context.Background()))
	assert.Equal(t, 3, store.Len())

	// Restart against the same durable store.
	restarted := openSession(t, store)

	got, err := restarted.Get(entity.KindPlace, "P1")
	require.NoError(t, err)
	assert.NotSame(t, place, got)

	rec := got.ToRecord()
	assert.Equal(t, want, rec)
	assert.Equal(t, "Nest", rec["name"])
	assert.Equal(t, "C1", rec["city_id"])

	n, err := restarted.Count("")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSession_DeleteIsEagerAndDurable(t *testing.T) {
	store := memory.NewStore()
	s := openSession(t, store)

	nestScenario(t, s)
	require.NoError(t, s.Save(context.Background()))

	place, err := s.Get(entity.KindPlace, "P1")
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), place))

	_, err = s.Get(entity.KindPlace, "P1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	places, err := s.AllByName("Place")
	require.NoError(t, err)
	assert.Empty(t, places)

	_, durable := store.Record(entity.KindPlace, "P1")
	assert.False(t, durable, "delete is not deferred to save")

	require.NoError(t, s.Save(context.Background()))

	restarted := openSession(t, store)
	_, err = restarted.Get(entity.KindPlace, "P1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSession_DeleteStagedEntityIsNeverPersisted(t *testing.T) {
	store := memory.NewStore()
	s := openSession(t, store)

	review := entity.NewReview("P1", "U1", "Lovely")
	require.NoError(t, s.New(review))
	require.NoError(t, s.Delete(context.Background(), review))
	require.NoError(t, s.Save(context.Background()))

	assert.Zero(t, store.Len())
}

func TestSession_DeleteNilIsNoop(t *testing.T) {
	s := openSession(t, memory.NewStore())

	assert.NoError(t, s.Delete(context.Background(), nil))
}

func TestSession_EntitySaveFlushesWholeStagingSet(t *testing.T) {
	store := memory.NewStore()
	s := openSession(t, store)

	state := entity.NewState("Oregon")
	amenity := entity.NewAmenity("Hot tub")
	require.NoError(t, s.New(state))
	require.NoError(t, s.New(amenity))

	before := state.UpdatedAt
	time.Sleep(2 * time.Microsecond)
	require.NoError(t, entity.Save(context.Background(), state, s))

	assert.True(t, state.UpdatedAt.After(before))
	assert.False(t, state.UpdatedAt.Before(state.CreatedAt))
	assert.Equal(t, 2, store.Len(), "saving one entity flushes every staged entity")

	_, ok := store.Record(entity.KindAmenity, amenity.ID)
	assert.True(t, ok)
}

func TestSession_CommitRegistersUnknownEntity(t *testing.T) {
	store := memory.NewStore()
	s := openSession(t, store)

	user := entity.NewUser("a@b.c", "hash")
	require.NoError(t, entity.Save(context.Background(), user, s))

	got, err := s.Get(entity.KindUser, user.ID)
	require.NoError(t, err)
	assert.Same(t, user, got)
	assert.Equal(t, 1, store.Len())
}

func TestSession_CommitRejectsSecondInstance(t *testing.T) {
	s := openSession(t, memory.NewStore())

	live := withID(entity.NewState("Utah"), "S9")
	stale := withID(entity.NewState("Utah"), "S9")
	require.NoError(t, s.New(live))

	err := s.Commit(context.Background(), stale)
	assert.ErrorIs(t, err, repository.ErrDuplicateIdentity)
}

func TestSession_ClosedIsUnavailable(t *testing.T) {
	s, err := Open(context.Background(), memory.NewStore(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "close is idempotent")

	_, err = s.All("")
	assert.ErrorIs(t, err, repository.ErrAdapterUnavailable)
	_, err = s.Get(entity.KindState, "x")
	assert.ErrorIs(t, err, repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, s.New(entity.NewState("x")), repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, s.Save(context.Background()), repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, s.Delete(context.Background(), entity.NewState("x")), repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, s.Reload(context.Background()), repository.ErrAdapterUnavailable)
	assert.ErrorIs(t, entity.Save(context.Background(), entity.NewState("x"), s), repository.ErrAdapterUnavailable)
}

func TestSession_NotLoadedIsUnavailable(t *testing.T) {
	s := NewSession(memory.NewStore(), nil, nil)

	_, err := s.All("")
	assert.ErrorIs(t, err, repository.ErrAdapterUnavailable)

	require.NoError(t, s.Load(context.Background()))
	assert.Error(t, s.Load(context.Background()), "load runs once")
}

func TestSession_MalformedRecordFailsLoad(t *testing.T) {
	store := memory.NewStore(
		entity.Record{entity.ClassKey: "State", "id": "S1", "name": "Ok",
			"created_at": "2017-03-25T02:17:06.000000", "updated_at": "2017-03-25T02:17:06.000000"},
		entity.Record{entity.ClassKey: "Place", "id": "P1"},
	)

	_, err := Open(context.Background(), store, nil, nil)
	assert.ErrorIs(t, err, repository.ErrMalformedRecord)
}

func TestSession_ReloadDiscardsStagedChanges(t *testing.T) {
	store := memory.NewStore()
	s := openSession(t, store)

	saved := entity.NewState("Kept")
	require.NoError(t, s.New(saved))
	require.NoError(t, s.Save(context.Background()))
	require.NoError(t, s.New(entity.NewState("Dropped")))

	require.NoError(t, s.Reload(context.Background()))

	states, err := repository.AllAs[*entity.State](s)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "Kept", states[0].Name)
}

func TestSession_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewSessionMetrics(reg)

	s, err := Open(context.Background(), memory.NewStore(), nil, m)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	state := entity.NewState("Texas")
	require.NoError(t, s.New(state))
	require.NoError(t, s.New(entity.NewState("Ohio")))
	require.NoError(t, s.Save(context.Background()))
	require.NoError(t, s.Delete(context.Background(), state))

	expected := `
# HELP hbnb_storage_live_entities Entities currently held in the identity map.
# TYPE hbnb_storage_live_entities gauge
hbnb_storage_live_entities{kind="Amenity"} 0
hbnb_storage_live_entities{kind="City"} 0
hbnb_storage_live_entities{kind="Place"} 0
hbnb_storage_live_entities{kind="Review"} 0
hbnb_storage_live_entities{kind="State"} 1
hbnb_storage_live_entities{kind="User"} 0
# HELP hbnb_storage_flushed_entities_total Entities written to the store adapter.
# TYPE hbnb_storage_flushed_entities_total counter
hbnb_storage_flushed_entities_total 2
# HELP hbnb_storage_deletes_total Entities deleted, by kind.
# TYPE hbnb_storage_deletes_total counter
hbnb_storage_deletes_total{kind="State"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"hbnb_storage_live_entities",
		"hbnb_storage_flushed_entities_total",
		"hbnb_storage_deletes_total",
	))
}

type failingStore struct {
	mock.Mock
	*memory.Store
}

func (f *failingStore) Persist(ctx context.Context, entities []entity.Entity) error {
	args := f.Called(len(entities))

	return args.Error(0)
}

func TestSession_FailedSaveKeepsStagingSet(t *testing.T) {
	store := &failingStore{Store: memory.NewStore()}
	store.On("Persist", 1).Return(errors.Wrap(repository.ErrAdapterUnavailable, "disk full")).Once()
	store.On("Persist", 1).Return(nil).Once()

	s := openSession(t, store)
	require.NoError(t, s.New(entity.NewState("Maine")))

	err := s.Save(context.Background())
	assert.ErrorIs(t, err, repository.ErrAdapterUnavailable)

	require.NoError(t, s.Save(context.Background()), "the staged entity is retried")
	require.NoError(t, s.Save(context.Background()), "nothing left to flush")
	store.AssertNumberOfCalls(t, "Persist", 2)
}

type stubbornStore struct {
	mock.Mock
	*memory.Store
}

func (f *stubbornStore) Remove(ctx context.Context, kind entity.Kind, id string) error {
	args := f.Called(kind, id)

	return args.Error(0)
}

func TestSession_FailedDeleteKeepsEntityLive(t *testing.T) {
	ctx := context.Background()
	store := &stubbornStore{Store: memory.NewStore()}

	s := openSession(t, store)
	state := entity.NewState("Vermont")
	require.NoError(t, s.New(state))
	require.NoError(t, s.Save(ctx))

	store.On("Remove", entity.KindState, state.ID).Return(errors.Wrap(repository.ErrAdapterUnavailable, "disk gone")).Once()
	store.On("Remove", entity.KindState, state.ID).Return(nil).Once()

	err := s.Delete(ctx, state)
	require.ErrorIs(t, err, repository.ErrAdapterUnavailable)

	got, err := s.Get(entity.KindState, state.ID)
	require.NoError(t, err)
	assert.Same(t, state, got)
	_, durable := store.Record(entity.KindState, state.ID)
	assert.True(t, durable)

	require.NoError(t, s.Delete(ctx, state))
	_, err = s.Get(entity.KindState, state.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
	store.AssertExpectations(t)
}
