// Package sqlite stores each entity as one JSON row in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/errors"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

const schema = `CREATE TABLE IF NOT EXISTS records (
	kind       TEXT NOT NULL,
	id         TEXT NOT NULL,
	payload    BLOB NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (kind, id)
)`

const upsert = `INSERT INTO records (kind, id, payload, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (kind, id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

var _ repository.StoreAdapter = (*Store)(nil)

type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// Open opens or creates the database at path. An empty path uses hbnb.db.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		path = "hbnb.db"
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, errors.Wrap(err, "create dirs")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// A single connection serializes writers on the same file.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()

		return nil, errors.Wrap(err, "create records table")
	}

	return &Store{db: db, path: path, logger: logger}, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) LoadAll(ctx context.Context) (map[entity.Key]entity.Entity, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, id, payload FROM records`)
	if err != nil {
		return nil, errors.Wrap(repository.ErrAdapterUnavailable, err.Error())
	}
	defer func() { _ = rows.Close() }()

	out := make(map[entity.Key]entity.Entity)
	for rows.Next() {
		var (
			kind, id string
			payload  []byte
		)
		if err := rows.Scan(&kind, &id, &payload); err != nil {
			return nil, errors.Wrap(err, "scan record")
		}

		var rec entity.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, errors.Wrapf(repository.ErrMalformedRecord, "decode %s.%s: %v", kind, id, err)
		}

		e, err := entity.FromRecord(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "load %s.%s", kind, id)
		}

		key := entity.KeyOf(e)
		if key != (entity.Key{Kind: entity.Kind(kind), ID: id}) {
			return nil, errors.Wrapf(repository.ErrMalformedRecord, "row %s.%s holds %s", kind, id, key)
		}
		out[key] = e
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate records")
	}

	s.logger.Debug("SQLite store loaded", slog.String("path", s.path), slog.Int("records", len(out)))

	return out, nil
}

func (s *Store) Persist(ctx context.Context, entities []entity.Entity) (retErr error) {
	if err := s.check(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(repository.ErrAdapterUnavailable, err.Error())
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return errors.Wrap(err, "prepare upsert")
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entities {
		payload, err := json.Marshal(e.ToRecord())
		if err != nil {
			return errors.Wrapf(err, "encode %s", entity.KeyOf(e))
		}

		updatedAt := e.Meta().UpdatedAt.Format(entity.TimeLayout)
		if _, err := stmt.ExecContext(ctx, string(e.Kind()), e.GetID(), payload, updatedAt); err != nil {
			return errors.Wrapf(err, "upsert %s", entity.KeyOf(e))
		}
	}

	return errors.Wrap(tx.Commit(), "commit records")
}

func (s *Store) Remove(ctx context.Context, kind entity.Kind, id string) error {
	if err := s.check(); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, string(kind), id); err != nil {
		return errors.Wrapf(err, "delete %s.%s", kind, id)
	}

	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	return errors.Wrap(s.db.Close(), "close sqlite")
}

func (s *Store) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.Wrap(repository.ErrAdapterUnavailable, "sqlite store closed")
	}

	return nil
}
