package entity

import (
	"math"
	"slices"
	"strings"

	"hbnb/internal/errors"
)

// ProtectedFields are never assignable through SetField.
//
//nolint:gochecknoglobals
var ProtectedFields = []string{"id", "created_at", "updated_at", ClassKey}

type fieldSetters[T any] map[string]func(T, any) error

func (fs fieldSetters[T]) set(e T, kind Kind, name string, value any) error {
	setter, ok := fs[name]
	if !ok {
		return errors.Wrapf(ErrInvalidField, "%s.%s is not updatable (allowed: %s)",
			kind, name, strings.Join(fs.names(), ", "))
	}

	return setter(e, value)
}

func (fs fieldSetters[T]) names() []string {
	out := make([]string, 0, len(fs))
	for name := range fs {
		out = append(out, name)
	}
	slices.Sort(out)

	return out
}

func assignString(dst *string, name string, value any) error {
	s, ok := value.(string)
	if !ok {
		return errors.Wrapf(ErrInvalidField, "%s must be a string", name)
	}
	*dst = s

	return nil
}

func assignInt(dst *int, name string, value any) error {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		if v != math.Trunc(v) {
			return errors.Wrapf(ErrInvalidField, "%s must be an integer", name)
		}
		n = int(v)
	default:
		return errors.Wrapf(ErrInvalidField, "%s must be an integer", name)
	}
	if n < 0 {
		return errors.Wrapf(ErrInvalidField, "%s must not be negative", name)
	}
	*dst = n

	return nil
}

func assignName(dst *string, value any) error {
	var s string
	if err := assignString(&s, "name", value); err != nil {
		return err
	}
	if s == "" {
		return errors.Wrap(ErrInvalidField, "name must not be empty")
	}
	*dst = s

	return nil
}

func assignFloat(dst *float64, name string, value any) error {
	switch v := value.(type) {
	case float64:
		*dst = v
	case int:
		*dst = float64(v)
	case int64:
		*dst = float64(v)
	default:
		return errors.Wrapf(ErrInvalidField, "%s must be a number", name)
	}

	return nil
}
