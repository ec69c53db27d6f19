package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// PlaceSearchInput filters places. Empty state and city lists match every
// place; amenities must all be linked; a center with a radius limits the
// distance from that point.
type PlaceSearchInput struct {
	States    []string `json:"states"`
	Cities    []string `json:"cities"`
	Amenities []string `json:"amenities"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	RadiusKm  *float64 `json:"radius_km" validate:"omitempty,gt=0"`
}

// PlaceUsecase defines the interface for place management use cases
type PlaceUsecase interface {
	ListPlaces(ctx context.Context, cityID string) ([]*entity.Place, error)
	GetPlace(ctx context.Context, placeID string) (*entity.Place, error)
	CreatePlace(ctx context.Context, cityID string, attrs Attrs) (*entity.Place, error)
	UpdatePlace(ctx context.Context, placeID string, attrs Attrs) (*entity.Place, error)
	DeletePlace(ctx context.Context, placeID string) error

	// Place amenity links
	ListPlaceAmenities(ctx context.Context, placeID string) ([]*entity.Amenity, error)
	// LinkAmenity reports whether a new link was created.
	LinkAmenity(ctx context.Context, placeID, amenityID string) (*entity.Amenity, bool, error)
	UnlinkAmenity(ctx context.Context, placeID, amenityID string) error

	SearchPlaces(ctx context.Context, input PlaceSearchInput) ([]*entity.Place, error)
}
