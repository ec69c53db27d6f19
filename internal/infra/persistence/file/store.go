// Package file stores every entity in one JSON document keyed by "<Kind>.<id>".
// The document lives in a gocloud.dev bucket, so a local directory, memory or
// an object store can hold it.
package file

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

const contentType = "application/json"

var _ repository.StoreAdapter = (*Store)(nil)

type Store struct {
	mu     sync.Mutex
	bucket *blob.Bucket
	key    string
	owned  bool
	logger *slog.Logger

	doc    map[string]entity.Record
	closed bool
}

// Open opens the bucket at bucketURL, e.g. "file:///var/lib/hbnb" or "mem://",
// and stores the document under key. Close closes the bucket.
func Open(ctx context.Context, bucketURL, key string, logger *slog.Logger) (*Store, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	s := New(bucket, key, logger)
	s.owned = true

	return s, nil
}

// New stores the document under key in an already opened bucket.
// The bucket stays open after Close.
func New(bucket *blob.Bucket, key string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{bucket: bucket, key: key, logger: logger}
}

func (s *Store) LoadAll(ctx context.Context) (map[entity.Key]entity.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.Wrap(repository.ErrAdapterUnavailable, "file store closed")
	}

	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[entity.Key]entity.Entity, len(doc))
	for docKey, rec := range doc {
		e, err := entity.FromRecord(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s", docKey)
		}

		key := entity.KeyOf(e)
		if key.String() != docKey {
			return nil, errors.Wrapf(repository.ErrMalformedRecord, "record %s holds %s", docKey, key)
		}
		out[key] = e
	}

	s.doc = doc
	s.logger.Debug("File store loaded", slog.String("key", s.key), slog.Int("records", len(doc)))

	return out, nil
}

func (s *Store) Persist(ctx context.Context, entities []entity.Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDoc(ctx); err != nil {
		return err
	}

	for _, e := range entities {
		s.doc[entity.KeyOf(e).String()] = e.ToRecord()
	}

	return s.write(ctx)
}

func (s *Store) Remove(ctx context.Context, kind entity.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureDoc(ctx); err != nil {
		return err
	}

	docKey := entity.Key{Kind: kind, ID: id}.String()
	if _, ok := s.doc[docKey]; !ok {
		return nil
	}
	delete(s.doc, docKey)

	return s.write(ctx)
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.doc = nil

	if !s.owned {
		return nil
	}

	return errors.Wrap(s.bucket.Close(), "close bucket")
}

func (s *Store) ensureDoc(ctx context.Context) error {
	if s.closed {
		return errors.Wrap(repository.ErrAdapterUnavailable, "file store closed")
	}
	if s.doc != nil {
		return nil
	}

	doc, err := s.read(ctx)
	if err != nil {
		return err
	}
	s.doc = doc

	return nil
}

// read returns an empty document when none has been written yet.
func (s *Store) read(ctx context.Context) (map[string]entity.Record, error) {
	data, err := s.bucket.ReadAll(ctx, s.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return make(map[string]entity.Record), nil
		}

		return nil, errors.Wrap(repository.ErrAdapterUnavailable, err.Error())
	}

	doc := make(map[string]entity.Record)
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(repository.ErrMalformedRecord, "decode %s: %v", s.key, err)
	}

	return doc, nil
}

func (s *Store) write(ctx context.Context) error {
	data, err := json.Marshal(s.doc)
	if err != nil {
		return errors.Wrap(err, "encode document")
	}

	if err := s.bucket.WriteAll(ctx, s.key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return errors.Wrap(repository.ErrAdapterUnavailable, err.Error())
	}

	return nil
}
