package impl

import (
	"cmp"
	"context"
	"slices"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// collectionNames maps kinds to the names used by the stats endpoint.
//
//nolint:gochecknoglobals
var collectionNames = map[entity.Kind]string{
	entity.KindAmenity: "amenities",
	entity.KindCity:    "cities",
	entity.KindPlace:   "places",
	entity.KindReview:  "reviews",
	entity.KindState:   "states",
	entity.KindUser:    "users",
}

type statsService struct {
	storage repository.Storage
}

// StatsServiceParams holds dependencies for StatsService, injected by Fx.
type StatsServiceParams struct {
	fx.In

	Storage repository.Storage
}

// NewStatsService creates a new stats service instance
func NewStatsService(params StatsServiceParams) usecase.StatsUsecase {
	return &statsService{storage: params.Storage}
}

func (s *statsService) Counts(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(collectionNames))
	for _, kind := range entity.Kinds() {
		n, err := s.storage.Count(kind)
		if err != nil {
			return nil, err
		}
		counts[collectionNames[kind]] = n
	}

	return counts, nil
}

// FiltersPage lists states with their cities, amenities and places, each sorted by name.
func (s *statsService) FiltersPage(_ context.Context) (*usecase.FiltersPage, error) {
	states, err := repository.AllAs[*entity.State](s.storage)
	if err != nil {
		return nil, err
	}
	cities, err := repository.AllAs[*entity.City](s.storage)
	if err != nil {
		return nil, err
	}
	amenities, err := repository.AllAs[*entity.Amenity](s.storage)
	if err != nil {
		return nil, err
	}
	places, err := repository.AllAs[*entity.Place](s.storage)
	if err != nil {
		return nil, err
	}

	citiesByState := make(map[string][]usecase.CityView)
	for _, city := range cities {
		citiesByState[city.StateID] = append(citiesByState[city.StateID], usecase.CityView{ID: city.ID, Name: city.Name})
	}

	page := &usecase.FiltersPage{
		States:    make([]usecase.StateView, 0, len(states)),
		Amenities: amenities,
		Places:    make([]usecase.PlaceView, 0, len(places)),
		CacheID:   uuid.NewString(),
	}

	for _, state := range states {
		stateCities := citiesByState[state.ID]
		slices.SortStableFunc(stateCities, func(a, b usecase.CityView) int { return cmp.Compare(a.Name, b.Name) })
		page.States = append(page.States, usecase.StateView{ID: state.ID, Name: state.Name, Cities: stateCities})
	}
	slices.SortStableFunc(page.States, func(a, b usecase.StateView) int { return cmp.Compare(a.Name, b.Name) })
	slices.SortStableFunc(page.Amenities, func(a, b *entity.Amenity) int { return cmp.Compare(a.Name, b.Name) })

	for _, place := range places {
		view := usecase.PlaceView{Place: place}
		if host, err := repository.GetAs[*entity.User](s.storage, place.UserID); err == nil {
			view.Host = host.DisplayName()
		}
		page.Places = append(page.Places, view)
	}
	slices.SortStableFunc(page.Places, func(a, b usecase.PlaceView) int { return cmp.Compare(a.Place.Name, b.Place.Name) })

	return page, nil
}
