// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"hbnb/config"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/service"

	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost int
}

// HasherParams holds dependencies for the password hasher, injected by Fx
type HasherParams struct {
	fx.In

	Config *config.Config
}

// NewBcryptHasher is the constructor for bcryptHasher.
// The cost comes from auth.bcryptCost and falls back to bcrypt.DefaultCost.
func NewBcryptHasher(params HasherParams) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.BcryptCost > 0 {
		cost = params.Config.Auth.BcryptCost
	}

	return NewBcryptHasherWithCost(cost)
}

// NewBcryptHasherWithCost returns a hasher with an explicit cost, clamped to bcrypt's bounds.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", domainerrors.ErrPasswordInvalid.WrapMessage("password must not be empty")
	}
	if len(password) > maxPasswordBytes {
		return "", domainerrors.ErrPasswordInvalid.WrapMessage("password must be at most 72 bytes")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}
