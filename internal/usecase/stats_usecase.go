package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// CityView is a city listed under its state on the filters page.
type CityView struct {
	ID   string
	Name string
}

// StateView is a state with its cities, both sorted by name.
type StateView struct {
	ID     string
	Name   string
	Cities []CityView
}

// PlaceView is a place with its host's display name.
type PlaceView struct {
	Place *entity.Place
	Host  string
}

// FiltersPage is the data behind the filters page.
type FiltersPage struct {
	States    []StateView
	Amenities []*entity.Amenity
	Places    []PlaceView
	// CacheID changes on every render so static assets are refetched.
	CacheID string
}

// StatsUsecase defines the interface for read-only overview use cases
type StatsUsecase interface {
	// Counts returns the number of live entities per collection name.
	Counts(ctx context.Context) (map[string]int, error)
	FiltersPage(ctx context.Context) (*FiltersPage, error)
}
