package postgres

import (
	"strings"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"

	"gorm.io/gorm"
)

// dbError converts a PostgreSQL error to a domain error. Constraint
// violations mean the entity itself is invalid; everything else is treated
// as the store being unavailable.
func dbError(err error, message string) error {
	if err == nil {
		return nil
	}

	if isUniqueConstraintViolation(err) {
		return errors.Wrap(repository.ErrDuplicateIdentity, message+": "+err.Error())
	}
	if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
		return errors.Wrap(entity.ErrInvalidField, message+": "+err.Error())
	}

	return errors.Wrap(repository.ErrAdapterUnavailable, message+": "+err.Error())
}

// Helper functions for PostgreSQL error checking
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(err.Error(), "23505") // PostgreSQL unique_violation error code
}

func isNotNullConstraintViolation(err error) bool {
	// Check error message for PostgreSQL-specific not null constraint violation patterns
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	// Check for GORM's check constraint violation error
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	return strings.Contains(err.Error(), "23514") // PostgreSQL check_violation error code
}
