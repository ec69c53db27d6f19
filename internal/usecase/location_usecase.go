package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// LocationUsecase defines the interface for state and city management use cases
type LocationUsecase interface {
	ListStates(ctx context.Context) ([]*entity.State, error)
	GetState(ctx context.Context, stateID string) (*entity.State, error)
	CreateState(ctx context.Context, attrs Attrs) (*entity.State, error)
	UpdateState(ctx context.Context, stateID string, attrs Attrs) (*entity.State, error)
	DeleteState(ctx context.Context, stateID string) error

	ListCities(ctx context.Context, stateID string) ([]*entity.City, error)
	GetCity(ctx context.Context, cityID string) (*entity.City, error)
	CreateCity(ctx context.Context, stateID string, attrs Attrs) (*entity.City, error)
	UpdateCity(ctx context.Context, cityID string, attrs Attrs) (*entity.City, error)
	DeleteCity(ctx context.Context, cityID string) error
}
