// Package entity contains the core business objects of the listing service,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"context"
	"time"

	"hbnb/internal/errors"

	"github.com/google/uuid"
)

// TimeLayout is the timestamp layout used in records. Timestamps are kept at
// microsecond precision so a record survives a round trip unchanged.
const TimeLayout = "2006-01-02T15:04:05.000000"

// ClassKey is the record key carrying the kind tag.
const ClassKey = "__class__"

var (
	// ErrInvalidField is returned when a field is unknown, protected or given a value of the wrong type.
	ErrInvalidField = errors.New("invalid field")
	// ErrMissingAttribute is returned when a required attribute is absent at construction.
	ErrMissingAttribute = errors.New("missing required attribute")
	// ErrMalformedRecord is returned when a durable record cannot be reconstructed.
	ErrMalformedRecord = errors.New("malformed record")
)

// Record is the plain attribute mapping of an entity.
type Record map[string]any

// Entity is implemented by every domain kind.
type Entity interface {
	// Kind returns the kind tag. It must not dereference the receiver.
	Kind() Kind
	GetID() string
	Meta() *Base
	// ToRecord produces the attribute mapping used for serialization and durable storage.
	ToRecord() Record
	// SetField assigns one updatable attribute by its record name.
	SetField(name string, value any) error
}

// Committer persists an entity together with everything else staged in the session.
type Committer interface {
	Commit(ctx context.Context, e Entity) error
}

// Base holds the identity and timestamp bookkeeping shared by all kinds.
type Base struct {
	ID        string    `mapstructure:"id" validate:"required"`
	CreatedAt time.Time `mapstructure:"created_at"`
	UpdatedAt time.Time `mapstructure:"updated_at"`
}

// NewBase returns a Base with a fresh id and both timestamps set to now.
func NewBase() Base {
	now := Now()

	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Now returns the current UTC time at record precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// GetID returns the entity id.
func (b *Base) GetID() string {
	return b.ID
}

// Meta exposes the base bookkeeping of the embedding entity.
func (b *Base) Meta() *Base {
	return b
}

// Touch refreshes UpdatedAt, never moving it before CreatedAt.
func (b *Base) Touch() {
	now := Now()
	if now.Before(b.CreatedAt) {
		now = b.CreatedAt
	}
	b.UpdatedAt = now
}

func (b *Base) record(kind Kind) Record {
	return Record{
		ClassKey:     string(kind),
		"id":         b.ID,
		"created_at": b.CreatedAt.Format(TimeLayout),
		"updated_at": b.UpdatedAt.Format(TimeLayout),
	}
}

// KeyOf returns the identity-map key of e.
func KeyOf(e Entity) Key {
	return Key{Kind: e.Kind(), ID: e.GetID()}
}

// Save is the save trigger: it refreshes UpdatedAt and hands e to the committer,
// which flushes every staged entity, not only e.
func Save(ctx context.Context, e Entity, c Committer) error {
	if c == nil {
		return errors.New("entity save: no session")
	}
	e.Meta().Touch()

	return c.Commit(ctx, e)
}

// Public returns the record of e without private attributes, for rendering to clients.
func Public(e Entity) Record {
	rec := e.ToRecord()
	for _, name := range privateFields[e.Kind()] {
		delete(rec, name)
	}

	return rec
}

//nolint:gochecknoglobals
var privateFields = map[Kind][]string{
	KindUser: {"password"},
}
