// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"hbnb/internal/domain/entity"
	"hbnb/internal/errors"
)

var (
	// ErrNotFound is returned when no live entity matches a kind and id.
	ErrNotFound = errors.New("entity not found")
	// ErrDuplicateIdentity is returned when an entity is registered twice under the same kind and id.
	ErrDuplicateIdentity = errors.New("duplicate entity identity")
	// ErrAdapterUnavailable is returned when the session is closed, not loaded, or its store is unreachable.
	ErrAdapterUnavailable = errors.New("storage adapter unavailable")
	// ErrMalformedRecord is returned by LoadAll when a durable record cannot be reconstructed.
	ErrMalformedRecord = entity.ErrMalformedRecord
	// ErrUnknownKind is returned when a kind is addressed by a name that is not registered.
	ErrUnknownKind = entity.ErrUnknownKind
)

// StoreAdapter isolates the durable representation of entities.
// Implementations may keep a flat document, a relational schema or plain memory.
type StoreAdapter interface {
	// LoadAll reads every durable record and reconstructs it as its kind.
	// Any malformed record fails the whole load.
	LoadAll(ctx context.Context) (map[entity.Key]entity.Entity, error)

	// Persist writes each given entity. Writes need not be atomic across entities.
	Persist(ctx context.Context, entities []entity.Entity) error

	// Remove deletes one durable record. Removing an absent record is not an error.
	Remove(ctx context.Context, kind entity.Kind, id string) error

	// Close releases held resources. It is idempotent.
	Close() error
}

// Storage is the identity-mapped session every request handler works through.
// There is one per process.
type Storage interface {
	entity.Committer

	// All returns every live entity, or only those of kind when kind is non-empty.
	All(kind entity.Kind) ([]entity.Entity, error)

	// AllByName is All with the kind given by name. Unknown names fail with ErrUnknownKind.
	AllByName(name string) ([]entity.Entity, error)

	// Get returns the live instance for kind and id, or ErrNotFound.
	Get(kind entity.Kind, id string) (entity.Entity, error)

	// GetByName is Get with the kind given by name. Unknown names fail with ErrUnknownKind.
	GetByName(name, id string) (entity.Entity, error)

	// Count returns the number of live entities, or only those of kind when kind is non-empty.
	Count(kind entity.Kind) (int, error)

	// New registers a freshly created entity and stages it.
	New(e entity.Entity) error

	// Save flushes the whole staging set to the store adapter.
	Save(ctx context.Context) error

	// Delete removes e from the session and from the store immediately.
	Delete(ctx context.Context, e entity.Entity) error

	// Reload discards all live state and loads it again from the store adapter.
	Reload(ctx context.Context) error

	// Close releases the store adapter. Later calls other than Close fail with ErrAdapterUnavailable.
	Close() error
}

// GetAs is Get for a concrete kind.
func GetAs[T entity.Entity](s Storage, id string) (T, error) {
	var zero T

	e, err := s.Get(zero.Kind(), id)
	if err != nil {
		return zero, err
	}

	typed, ok := e.(T)
	if !ok {
		return zero, errors.Wrapf(ErrNotFound, "%s.%s has unexpected type %T", zero.Kind(), id, e)
	}

	return typed, nil
}

// AllAs is All for a concrete kind.
func AllAs[T entity.Entity](s Storage) ([]T, error) {
	var zero T

	all, err := s.All(zero.Kind())
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(all))
	for _, e := range all {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}

	return out, nil
}
