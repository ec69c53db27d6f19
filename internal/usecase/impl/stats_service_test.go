package impl

import (
	"context"
	"testing"

	"hbnb/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Counts(t *testing.T) {
	storage, _ := newTestStorage(t)
	svc := NewStatsService(StatsServiceParams{Storage: storage})

	state := mustNew(t, storage, entity.NewState("California"))
	mustNew(t, storage, entity.NewCity(state.ID, "San Francisco"))
	mustNew(t, storage, entity.NewCity(state.ID, "Los Angeles"))
	mustNew(t, storage, entity.NewAmenity("Wifi"))

	counts, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"amenities": 1,
		"cities":    2,
		"places":    0,
		"reviews":   0,
		"states":    1,
		"users":     0,
	}, counts)
}

func TestStatsService_FiltersPage(t *testing.T) {
	storage, _ := newTestStorage(t)
	svc := NewStatsService(StatsServiceParams{Storage: storage})

	nevada := mustNew(t, storage, entity.NewState("Nevada"))
	california := mustNew(t, storage, entity.NewState("California"))
	mustNew(t, storage, entity.NewCity(california.ID, "San Francisco"))
	mustNew(t, storage, entity.NewCity(california.ID, "Los Angeles"))
	mustNew(t, storage, entity.NewCity(nevada.ID, "Reno"))
	mustNew(t, storage, entity.NewAmenity("Wifi"))
	mustNew(t, storage, entity.NewAmenity("Pool"))

	host := entity.NewUser("ada@example.com", "hash")
	host.FirstName, host.LastName = "Ada", "Lovelace"
	mustNew(t, storage, host)
	mustNew(t, storage, entity.NewPlace("c", host.ID, "Zen Loft"))
	mustNew(t, storage, entity.NewPlace("c", "ghost", "Attic"))

	page, err := svc.FiltersPage(context.Background())
	require.NoError(t, err)

	require.Len(t, page.States, 2)
	assert.Equal(t, "California", page.States[0].Name)
	require.Len(t, page.States[0].Cities, 2)
	assert.Equal(t, "Los Angeles", page.States[0].Cities[0].Name)
	assert.Equal(t, "San Francisco", page.States[0].Cities[1].Name)
	assert.Equal(t, "Nevada", page.States[1].Name)

	require.Len(t, page.Amenities, 2)
	assert.Equal(t, "Pool", page.Amenities[0].Name)

	require.Len(t, page.Places, 2)
	assert.Equal(t, "Attic", page.Places[0].Place.Name)
	assert.Empty(t, page.Places[0].Host)
	assert.Equal(t, "Ada Lovelace", page.Places[1].Host)

	assert.NotEmpty(t, page.CacheID)

	again, err := svc.FiltersPage(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, page.CacheID, again.CacheID)
}
