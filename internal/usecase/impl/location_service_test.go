package impl

import (
	"context"
	"testing"

	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocationService(t *testing.T) (usecase.LocationUsecase, repository.Storage) {
	t.Helper()

	storage, _ := newTestStorage(t)

	return NewLocationService(LocationServiceParams{Storage: storage, Logger: newDiscardLogger()}), storage
}

func TestLocationService_CreateAndGetState(t *testing.T) {
	svc, storage := newLocationService(t)
	ctx := context.Background()

	state, err := svc.CreateState(ctx, usecase.Attrs{"name": "California", "id": "forced"})
	require.NoError(t, err)
	assert.NotEqual(t, "forced", state.ID)

	got, err := svc.GetState(ctx, state.ID)
	require.NoError(t, err)
	assert.Same(t, state, got)

	n, err := storage.Count(entity.KindState)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLocationService_CreateStateMissingName(t *testing.T) {
	svc, _ := newLocationService(t)

	_, err := svc.CreateState(context.Background(), usecase.Attrs{})
	assert.ErrorIs(t, err, domainerrors.ErrMissingAttribute)
}

func TestLocationService_UpdateState(t *testing.T) {
	svc, _ := newLocationService(t)
	ctx := context.Background()

	state, err := svc.CreateState(ctx, usecase.Attrs{"name": "Californa"})
	require.NoError(t, err)
	createdAt := state.CreatedAt

	updated, err := svc.UpdateState(ctx, state.ID, usecase.Attrs{"name": "California", "created_at": "2000-01-01T00:00:00.000000"})
	require.NoError(t, err)
	assert.Equal(t, "California", updated.Name)
	assert.Equal(t, createdAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	_, err = svc.UpdateState(ctx, "missing", usecase.Attrs{"name": "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLocationService_DeleteState(t *testing.T) {
	svc, _ := newLocationService(t)
	ctx := context.Background()

	state, err := svc.CreateState(ctx, usecase.Attrs{"name": "Nevada"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteState(ctx, state.ID))

	_, err = svc.GetState(ctx, state.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteState(ctx, state.ID), repository.ErrNotFound)
}

func TestLocationService_Cities(t *testing.T) {
	svc, _ := newLocationService(t)
	ctx := context.Background()

	california, err := svc.CreateState(ctx, usecase.Attrs{"name": "California"})
	require.NoError(t, err)
	nevada, err := svc.CreateState(ctx, usecase.Attrs{"name": "Nevada"})
	require.NoError(t, err)

	sf, err := svc.CreateCity(ctx, california.ID, usecase.Attrs{"name": "San Francisco", "state_id": nevada.ID})
	require.NoError(t, err)
	assert.Equal(t, california.ID, sf.StateID)

	_, err = svc.CreateCity(ctx, nevada.ID, usecase.Attrs{"name": "Reno"})
	require.NoError(t, err)

	cities, err := svc.ListCities(ctx, california.ID)
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Same(t, sf, cities[0])

	_, err = svc.ListCities(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.CreateCity(ctx, "missing", usecase.Attrs{"name": "Nowhere"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.CreateCity(ctx, california.ID, usecase.Attrs{})
	require.ErrorIs(t, err, domainerrors.ErrMissingAttribute)

	moved, err := svc.UpdateCity(ctx, sf.ID, usecase.Attrs{"state_id": nevada.ID, "name": "SF"})
	require.NoError(t, err)
	assert.Equal(t, california.ID, moved.StateID)
	assert.Equal(t, "SF", moved.Name)

	require.NoError(t, svc.DeleteCity(ctx, sf.ID))
	_, err = svc.GetCity(ctx, sf.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
