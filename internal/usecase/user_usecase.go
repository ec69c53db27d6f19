package usecase

import (
	"context"

	"hbnb/internal/domain/entity"
)

// UserUsecase defines the interface for user-related business operations.
// Passwords are hashed before they reach the entity.
type UserUsecase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	CreateUser(ctx context.Context, attrs Attrs) (*entity.User, error)
	UpdateUser(ctx context.Context, userID string, attrs Attrs) (*entity.User, error)
	DeleteUser(ctx context.Context, userID string) error
}
