// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"slices"

	"hbnb/internal/domain/entity"
	domainerrors "hbnb/internal/domain/errors"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
	"hbnb/internal/usecase"
)

// skipped reports whether a request key is dropped silently instead of being assigned.
func skipped(name string, ignored []string) bool {
	return slices.Contains(entity.ProtectedFields, name) || slices.Contains(ignored, name)
}

// sanitize copies attrs without protected or ignored keys.
func sanitize(attrs usecase.Attrs, ignored ...string) usecase.Attrs {
	out := make(usecase.Attrs, len(attrs))
	for name, value := range attrs {
		if skipped(name, ignored) {
			continue
		}
		out[name] = value
	}

	return out
}

// requireString fails with a "Missing <key>" detail when attrs lacks a non-empty string at key.
func requireString(attrs usecase.Attrs, key string) (string, error) {
	s, _ := attrs[key].(string)
	if s == "" {
		return "", domainerrors.ErrMissingAttribute.WithDetails("Missing " + key)
	}

	return s, nil
}

// applyAttrs assigns every non-skipped attribute through SetField. The
// assignments are first tried on a copy so a rejected field leaves e untouched.
func applyAttrs(e entity.Entity, attrs usecase.Attrs, ignored ...string) error {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		if !skipped(name, ignored) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	trial, err := entity.FromRecord(e.ToRecord())
	if err != nil {
		return errors.Wrap(err, "copy entity")
	}
	for _, name := range names {
		if err := trial.SetField(name, attrs[name]); err != nil {
			return err
		}
	}

	for _, name := range names {
		if err := e.SetField(name, attrs[name]); err != nil {
			return err
		}
	}

	return nil
}

// create builds an entity of T's kind from attrs, registers it and flushes the session.
func create[T entity.Entity](ctx context.Context, storage repository.Storage, attrs usecase.Attrs) (T, error) {
	var zero T

	e, err := entity.Create(zero.Kind(), attrs)
	if err != nil {
		return zero, err
	}

	typed, ok := e.(T)
	if !ok {
		return zero, errors.Errorf("created %T, want %T", e, zero)
	}

	if err := entity.Save(ctx, typed, storage); err != nil {
		return zero, err
	}

	return typed, nil
}

// update assigns attrs to the live instance and saves it.
func update[T entity.Entity](ctx context.Context, storage repository.Storage, id string, attrs usecase.Attrs, ignored ...string) (T, error) {
	var zero T

	e, err := repository.GetAs[T](storage, id)
	if err != nil {
		return zero, err
	}

	if err := applyAttrs(e, attrs, ignored...); err != nil {
		return zero, err
	}

	if err := entity.Save(ctx, e, storage); err != nil {
		return zero, err
	}

	return e, nil
}

// remove deletes the live instance and flushes whatever else is staged.
func remove[T entity.Entity](ctx context.Context, storage repository.Storage, id string) error {
	e, err := repository.GetAs[T](storage, id)
	if err != nil {
		return err
	}

	if err := storage.Delete(ctx, e); err != nil {
		return err
	}

	return storage.Save(ctx)
}

// filter keeps the items for which keep returns true.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}
