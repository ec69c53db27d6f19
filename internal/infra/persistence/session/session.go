// Package session implements the identity-mapped storage session: the single
// process-wide owner of every live entity, backed by a repository.StoreAdapter.
package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"
	"hbnb/internal/infra/metrics"

	"go.uber.org/fx"
)

type state int

const (
	stateUninitialized state = iota
	stateLoaded
	stateClosed
)

var _ repository.Storage = (*Session)(nil)

// Session holds at most one live instance per (kind, id) and a staging set of
// instances created or modified since the last flush.
type Session struct {
	mu      sync.RWMutex
	adapter repository.StoreAdapter
	logger  *slog.Logger
	metrics *metrics.SessionMetrics

	state   state
	objects map[entity.Key]entity.Entity
	staged  map[entity.Key]struct{}
}

// Params defines the parameters required for the session
type Params struct {
	fx.In
	fx.Lifecycle

	Adapter repository.StoreAdapter
	Logger  *slog.Logger
	Metrics *metrics.SessionMetrics `optional:"true"`
}

// New creates the process session. It is loaded on start and closed on stop.
func New(params Params) repository.Storage {
	s := NewSession(params.Adapter, params.Logger, params.Metrics)

	params.Append(fx.Hook{
		OnStart: s.Load,
		OnStop: func(_ context.Context) error {
			params.Logger.Info("Closing storage session")

			return s.Close()
		},
	})

	return s
}

// NewSession returns an uninitialized session. Call Load before use.
func NewSession(adapter repository.StoreAdapter, logger *slog.Logger, m *metrics.SessionMetrics) *Session {
	if logger == nil {
		logger = slog.Default()
	}

	return &Session{
		adapter: adapter,
		logger:  logger,
		metrics: m,
	}
}

// Open returns a loaded session.
func Open(ctx context.Context, adapter repository.StoreAdapter, logger *slog.Logger, m *metrics.SessionMetrics) (*Session, error) {
	s := NewSession(adapter, logger, m)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Load populates the identity map from the store adapter. It runs once.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateLoaded:
		return errors.New("storage session already loaded")
	case stateClosed:
		return errors.Wrap(repository.ErrAdapterUnavailable, "storage session closed")
	}

	return s.loadLocked(ctx)
}

func (s *Session) loadLocked(ctx context.Context) error {
	start := time.Now()

	objects, err := s.adapter.LoadAll(ctx)
	if err != nil {
		return errors.Wrap(err, "load storage")
	}
	if objects == nil {
		objects = make(map[entity.Key]entity.Entity)
	}

	for key, e := range objects {
		if e == nil || entity.KeyOf(e) != key {
			return errors.Wrapf(repository.ErrMalformedRecord, "record stored under %s does not match its entity", key)
		}
	}

	s.objects = objects
	s.staged = make(map[entity.Key]struct{})
	s.state = stateLoaded
	s.refreshGauges()

	s.logger.Debug("Storage session loaded",
		slog.Int("entities", len(objects)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

func (s *Session) available() error {
	switch s.state {
	case stateLoaded:
		return nil
	case stateClosed:
		return errors.Wrap(repository.ErrAdapterUnavailable, "storage session closed")
	default:
		return errors.Wrap(repository.ErrAdapterUnavailable, "storage session not loaded")
	}
}

// All returns every live entity, or only those of kind when kind is non-empty,
// ordered by kind, creation time and id. Staged entities are included.
func (s *Session) All(kind entity.Kind) ([]entity.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.available(); err != nil {
		return nil, err
	}

	out := make([]entity.Entity, 0, len(s.objects))
	for key, e := range s.objects {
		if kind != "" && key.Kind != kind {
			continue
		}
		out = append(out, e)
	}
	slices.SortFunc(out, entity.Compare)

	return out, nil
}

// AllByName is All with the kind given by name.
func (s *Session) AllByName(name string) ([]entity.Entity, error) {
	kind, err := entity.ParseKind(name)
	if err != nil {
		return nil, err
	}

	return s.All(kind)
}

// Get returns the live instance for kind and id.
func (s *Session) Get(kind entity.Kind, id string) (entity.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.available(); err != nil {
		return nil, err
	}

	key := entity.Key{Kind: kind, ID: id}
	e, ok := s.objects[key]
	if !ok {
		return nil, errors.Wrapf(repository.ErrNotFound, "%s", key)
	}

	return e, nil
}

// GetByName is Get with the kind given by name.
func (s *Session) GetByName(name, id string) (entity.Entity, error) {
	kind, err := entity.ParseKind(name)
	if err != nil {
		return nil, err
	}

	return s.Get(kind, id)
}

// Count returns the number of live entities of kind, or of all kinds when kind is empty.
func (s *Session) Count(kind entity.Kind) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.available(); err != nil {
		return 0, err
	}

	if kind == "" {
		return len(s.objects), nil
	}

	n := 0
	for key := range s.objects {
		if key.Kind == kind {
			n++
		}
	}

	return n, nil
}

// New registers a freshly created entity and stages it. Registering a second
// instance under an existing key fails and leaves the first one untouched.
func (s *Session) New(e entity.Entity) error {
	if e == nil {
		return errors.New("storage new: nil entity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.available(); err != nil {
		return err
	}

	key := entity.KeyOf(e)
	if key.ID == "" {
		return errors.Wrapf(entity.ErrMissingAttribute, "%s.id", key.Kind)
	}
	if _, exists := s.objects[key]; exists {
		return errors.Wrapf(repository.ErrDuplicateIdentity, "%s", key)
	}

	s.objects[key] = e
	s.staged[key] = struct{}{}
	s.refreshGauge(key.Kind)

	return nil
}

// Commit stages e, registering it when it is not live yet, then flushes the
// whole staging set. It is the target of entity.Save.
func (s *Session) Commit(ctx context.Context, e entity.Entity) error {
	if e == nil {
		return errors.New("storage commit: nil entity")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.available(); err != nil {
		return err
	}

	key := entity.KeyOf(e)
	if live, exists := s.objects[key]; exists && live != e {
		return errors.Wrapf(repository.ErrDuplicateIdentity, "%s is live as another instance", key)
	}

	if _, exists := s.objects[key]; !exists {
		s.objects[key] = e
		s.refreshGauge(key.Kind)
	}
	s.staged[key] = struct{}{}

	return s.flushLocked(ctx)
}

// Save flushes the staging set to the store adapter, then clears it.
// On failure the staging set is kept so a later Save retries it.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.available(); err != nil {
		return err
	}

	return s.flushLocked(ctx)
}

func (s *Session) flushLocked(ctx context.Context) error {
	if len(s.staged) == 0 {
		return nil
	}

	pending := make([]entity.Entity, 0, len(s.staged))
	for key := range s.staged {
		pending = append(pending, s.objects[key])
	}
	slices.SortFunc(pending, entity.Compare)

	start := time.Now()
	err := s.adapter.Persist(ctx, pending)
	s.metrics.ObserveFlush(len(pending), time.Since(start), err)
	if err != nil {
		return errors.Wrap(err, "persist staged entities")
	}

	clear(s.staged)

	s.logger.Debug("Storage session flushed",
		slog.Int("entities", len(pending)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// Delete deletes the durable record of e right away, then drops e from the
// identity map and the staging set; it is not deferred to the next Save.
// When the store fails, e stays live and staged as it was.
func (s *Session) Delete(ctx context.Context, e entity.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.available(); err != nil {
		return err
	}
	if e == nil {
		return nil
	}

	key := entity.KeyOf(e)
	if err := s.adapter.Remove(ctx, key.Kind, key.ID); err != nil {
		return errors.Wrapf(err, "remove %s", key)
	}

	delete(s.objects, key)
	delete(s.staged, key)
	s.refreshGauge(key.Kind)
	s.metrics.IncDelete(string(key.Kind))

	s.logger.Debug("Storage session deleted entity", slog.String("key", key.String()))

	return nil
}

// Reload drops every live instance and staged change and loads the store again.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateClosed {
		return errors.Wrap(repository.ErrAdapterUnavailable, "storage session closed")
	}

	return s.loadLocked(ctx)
}

// Close releases the store adapter. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateClosed {
		return nil
	}

	if len(s.staged) > 0 {
		s.logger.Warn("Closing storage session with unsaved changes", slog.Int("staged", len(s.staged)))
	}

	s.state = stateClosed
	s.objects = nil
	s.staged = nil

	if err := s.adapter.Close(); err != nil {
		return errors.Wrap(err, "close storage adapter")
	}

	return nil
}

func (s *Session) refreshGauges() {
	for _, kind := range entity.Kinds() {
		s.refreshGauge(kind)
	}
}

func (s *Session) refreshGauge(kind entity.Kind) {
	if s.metrics == nil {
		return
	}

	n := 0
	for key := range s.objects {
		if key.Kind == kind {
			n++
		}
	}
	s.metrics.SetLive(string(kind), n)
}
