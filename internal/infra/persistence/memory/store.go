// Package memory provides a process-local store adapter. Records are kept in
// their durable form so a reload yields fresh instances, as with the other adapters.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
)

var _ repository.StoreAdapter = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	records map[entity.Key]entity.Record
	closed  bool
}

// NewStore returns a store seeded with the given records. Seeds are only
// checked on LoadAll, which lets tests plant malformed records.
func NewStore(seed ...entity.Record) *Store {
	s := &Store{records: make(map[entity.Key]entity.Record, len(seed))}
	for _, rec := range seed {
		class, _ := rec[entity.ClassKey].(string)
		id, _ := rec["id"].(string)
		s.records[entity.Key{Kind: entity.Kind(class), ID: id}] = copyRecord(rec)
	}

	return s
}

func (s *Store) LoadAll(_ context.Context) (map[entity.Key]entity.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errors.Wrap(repository.ErrAdapterUnavailable, "memory store closed")
	}

	out := make(map[entity.Key]entity.Entity, len(s.records))
	for key, rec := range s.records {
		e, err := entity.FromRecord(copyRecord(rec))
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", key)
		}
		out[entity.KeyOf(e)] = e
	}

	return out, nil
}

func (s *Store) Persist(_ context.Context, entities []entity.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.Wrap(repository.ErrAdapterUnavailable, "memory store closed")
	}

	for _, e := range entities {
		s.records[entity.KeyOf(e)] = e.ToRecord()
	}

	return nil
}

func (s *Store) Remove(_ context.Context, kind entity.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.Wrap(repository.ErrAdapterUnavailable, "memory store closed")
	}

	delete(s.records, entity.Key{Kind: kind, ID: id})

	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

// Len returns the number of durable records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Record returns a copy of the durable record for kind and id.
func (s *Store) Record(kind entity.Kind, id string) (entity.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[entity.Key{Kind: kind, ID: id}]
	if !ok {
		return nil, false
	}

	return copyRecord(rec), true
}

func copyRecord(rec entity.Record) entity.Record {
	out := maps.Clone(rec)
	for k, v := range out {
		if ids, ok := v.([]string); ok {
			out[k] = slices.Clone(ids)
		}
	}

	return out
}
