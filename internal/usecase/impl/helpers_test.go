package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"hbnb/internal/domain/entity"
	"hbnb/internal/domain/repository"
	"hbnb/internal/infra/persistence/memory"
	"hbnb/internal/infra/persistence/session"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStorage opens a session over a fresh memory store and returns both.
func newTestStorage(t *testing.T) (repository.Storage, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	s, err := session.Open(context.Background(), store, newDiscardLogger(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, store
}

// mustNew registers and saves e directly through the session.
func mustNew[T entity.Entity](t *testing.T, storage repository.Storage, e T) T {
	t.Helper()

	require.NoError(t, storage.New(e))
	require.NoError(t, storage.Save(context.Background()))

	return e
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}
