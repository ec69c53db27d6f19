package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// AmenityUsecase defines the interface for amenity management use cases
type AmenityUsecase interface {
	ListAmenities(ctx context.Context) ([]*entity.Amenity, error)
	GetAmenity(ctx context.Context, amenityID string) (*entity.Amenity, error)
	CreateAmenity(ctx context.Context, attrs Attrs) (*entity.Amenity, error)
	UpdateAmenity(ctx context.Context, amenityID string, attrs Attrs) (*entity.Amenity, error)
	DeleteAmenity(ctx context.Context, amenityID string) error
}
