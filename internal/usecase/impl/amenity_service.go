package impl

import (
	"context"
	"log/slog"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/usecase"

	"go.uber.org/fx"
)

type amenityService struct {
	storage repository.Storage
	logger  *slog.Logger
}

// AmenityServiceParams holds dependencies for AmenityService, injected by Fx.
type AmenityServiceParams struct {
	fx.In

	Storage repository.Storage
	Logger  *slog.Logger
}

// NewAmenityService creates a new amenity service instance
func NewAmenityService(params AmenityServiceParams) usecase.AmenityUsecase {
	return &amenityService{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

func (s *amenityService) ListAmenities(_ context.Context) ([]*entity.Amenity, error) {
	return repository.AllAs[*entity.Amenity](s.storage)
}

func (s *amenityService) GetAmenity(_ context.Context, amenityID string) (*entity.Amenity, error) {
	return repository.GetAs[*entity.Amenity](s.storage, amenityID)
}

func (s *amenityService) CreateAmenity(ctx context.Context, attrs usecase.Attrs) (*entity.Amenity, error) {
	attrs = sanitize(attrs)
	if _, err := requireString(attrs, "name"); err != nil {
		return nil, err
	}

	amenity, err := create[*entity.Amenity](ctx, s.storage, attrs)
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("Amenity created", slog.String("amenity_id", amenity.ID))

	return amenity, nil
}

func (s *amenityService) UpdateAmenity(ctx context.Context, amenityID string, attrs usecase.Attrs) (*entity.Amenity, error) {
	return update[*entity.Amenity](ctx, s.storage, amenityID, attrs)
}

func (s *amenityService) DeleteAmenity(ctx context.Context, amenityID string) error {
	return remove[*entity.Amenity](ctx, s.storage, amenityID)
}
