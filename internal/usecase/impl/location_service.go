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

type locationService struct {
	storage repository.Storage
	logger  *slog.Logger
}

// LocationServiceParams holds dependencies for LocationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	Storage repository.Storage
	Logger  *slog.Logger
}

// NewLocationService creates a new location service instance
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		storage: params.Storage,
		logger:  params.Logger,
	}
}

func (s *locationService) ListStates(_ context.Context) ([]*entity.State, error) {
	return repository.AllAs[*entity.State](s.storage)
}

func (s *locationService) GetState(_ context.Context, stateID string) (*entity.State, error) {
	return repository.GetAs[*entity.State](s.storage, stateID)
}

func (s *locationService) CreateState(ctx context.Context, attrs usecase.Attrs) (*entity.State, error) {
	attrs = sanitize(attrs)
	if _, err := requireString(attrs, "name"); err != nil {
		return nil, err
	}

	state, err := create[*entity.State](ctx, s.storage, attrs)
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("State created", slog.String("state_id", state.ID))

	return state, nil
}

func (s *locationService) UpdateState(ctx context.Context, stateID string, attrs usecase.Attrs) (*entity.State, error) {
	return update[*entity.State](ctx, s.storage, stateID, attrs)
}

func (s *locationService) DeleteState(ctx context.Context, stateID string) error {
	return remove[*entity.State](ctx, s.storage, stateID)
}

// ListCities returns the cities of a state; the state must exist.
func (s *locationService) ListCities(_ context.Context, stateID string) ([]*entity.City, error) {
	if _, err := repository.GetAs[*entity.State](s.storage, stateID); err != nil {
		return nil, err
	}

	cities, err := repository.AllAs[*entity.City](s.storage)
	if err != nil {
		return nil, err
	}

	return filter(cities, func(c *entity.City) bool { return c.StateID == stateID }), nil
}

func (s *locationService) GetCity(_ context.Context, cityID string) (*entity.City, error) {
	return repository.GetAs[*entity.City](s.storage, cityID)
}

func (s *locationService) CreateCity(ctx context.Context, stateID string, attrs usecase.Attrs) (*entity.City, error) {
	if _, err := repository.GetAs[*entity.State](s.storage, stateID); err != nil {
		return nil, err
	}

	attrs = sanitize(attrs, "state_id")
	if _, err := requireString(attrs, "name"); err != nil {
		return nil, err
	}
	attrs["state_id"] = stateID

	city, err := create[*entity.City](ctx, s.storage, attrs)
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("City created",
		slog.String("city_id", city.ID),
		slog.String("state_id", stateID),
	)

	return city, nil
}

func (s *locationService) UpdateCity(ctx context.Context, cityID string, attrs usecase.Attrs) (*entity.City, error) {
	return update[*entity.City](ctx, s.storage, cityID, attrs, "state_id")
}

func (s *locationService) DeleteCity(ctx context.Context, cityID string) error {
	return remove[*entity.City](ctx, s.storage, cityID)
}
