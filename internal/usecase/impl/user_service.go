package impl

import (
	"context"
	"log/slog"

	deliverycontext "hbnb/internal/delivery/context"
	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/domain/service"
	"hbnb/internal/errors"
	"hbnb/internal/usecase"

	"go.uber.org/fx"
)

type userService struct {
	storage repository.Storage
	hasher  service.PasswordHasher
	logger  *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	Storage        repository.Storage
	PasswordHasher service.PasswordHasher
	Logger         *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		storage: params.Storage,
		hasher:  params.PasswordHasher,
		logger:  params.Logger,
	}
}

func (s *userService) ListUsers(_ context.Context) ([]*entity.User, error) {
	return repository.AllAs[*entity.User](s.storage)
}

func (s *userService) GetUser(_ context.Context, userID string) (*entity.User, error) {
	return repository.GetAs[*entity.User](s.storage, userID)
}

func (s *userService) CreateUser(ctx context.Context, attrs usecase.Attrs) (*entity.User, error) {
	attrs = sanitize(attrs)
	if _, err := requireString(attrs, "email"); err != nil {
		return nil, err
	}
	if _, err := requireString(attrs, "password"); err != nil {
		return nil, err
	}

	if err := s.hashPassword(attrs); err != nil {
		return nil, err
	}

	user, err := create[*entity.User](ctx, s.storage, attrs)
	if err != nil {
		return nil, err
	}

	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("User created", slog.String("user_id", user.ID))

	return user, nil
}

// UpdateUser ignores email; it is fixed at creation.
func (s *userService) UpdateUser(ctx context.Context, userID string, attrs usecase.Attrs) (*entity.User, error) {
	attrs = sanitize(attrs, "email")
	if err := s.hashPassword(attrs); err != nil {
		return nil, err
	}

	return update[*entity.User](ctx, s.storage, userID, attrs)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return remove[*entity.User](ctx, s.storage, userID)
}

// hashPassword replaces a plaintext password in attrs with its hash.
func (s *userService) hashPassword(attrs usecase.Attrs) error {
	raw, present := attrs["password"]
	if !present {
		return nil
	}

	plain, ok := raw.(string)
	if !ok {
		return errors.Wrap(entity.ErrInvalidField, "password must be a string")
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return err
	}
	attrs["password"] = hash

	return nil
}
