package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"), limit)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newSession(id string, created time.Time) domain.SessionState {
	return domain.SessionState{
		ID:        id,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "sessions.db")

	store, err := NewStore(path, 0)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, path, store.Path())
	assert.FileExists(t, path)
}

func TestNewStore_ReopenKeepsSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	store, err := NewStore(path, 0)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, newSession("s1", time.Now())))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path, 0)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
}

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)

	session := newSession("s1", now)
	session.Buffer = "12+3"
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "12+3", got.Buffer)
	assert.Nil(t, got.Err)
	assert.True(t, got.CreatedAt.Equal(now))
	assert.True(t, got.UpdatedAt.Equal(now))
}

func TestStore_SaveKeepsError(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()

	session := newSession("s1", time.Now())
	session.Err = &domain.EvalError{Kind: domain.KindInvalidNumber, Text: "1.2.3"}
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got.Err)
	assert.Equal(t, domain.KindInvalidNumber, got.Err.Kind)
	assert.Equal(t, "1.2.3", got.Err.Text)
	assert.Equal(t, session.Display(), got.Display())
}

func TestStore_SaveUpdates(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()
	created := time.Now().Add(-time.Hour).Truncate(time.Second)

	session := newSession("s1", created)
	session.Err = domain.ErrDivisionByZero
	require.NoError(t, store.Save(ctx, session))

	session.Buffer = "7"
	session.Err = nil
	session.UpdatedAt = created.Add(time.Minute)
	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "7", got.Buffer)
	assert.Nil(t, got.Err)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.UpdatedAt.Equal(created.Add(time.Minute)))
}

func TestStore_GetNotFound(t *testing.T) {
	store := newTestStore(t, 0)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, newSession("s1", time.Now())))

	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "s1"), domain.ErrSessionNotFound)
}

func TestStore_ListOldestFirst(t *testing.T) {
	store := newTestStore(t, 0)
	ctx := context.Background()
	base := time.Now().Truncate(time.Second)

	require.NoError(t, store.Save(ctx, newSession("b", base.Add(time.Second))))
	require.NoError(t, store.Save(ctx, newSession("a", base)))
	require.NoError(t, store.Save(ctx, newSession("c", base.Add(2*time.Second))))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 3)
	assert.Equal(t, "a", sessions[0].ID)
	assert.Equal(t, "b", sessions[1].ID)
	assert.Equal(t, "c", sessions[2].ID)
}

func TestStore_ListEmpty(t *testing.T) {
	store := newTestStore(t, 0)

	sessions, err := store.List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestStore_Limit(t *testing.T) {
	store := newTestStore(t, 2)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, newSession("s1", time.Now())))
	require.NoError(t, store.Save(ctx, newSession("s2", time.Now())))

	err := store.Save(ctx, newSession("s3", time.Now()))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Updating an existing session is allowed at the limit.
	assert.NoError(t, store.Save(ctx, newSession("s1", time.Now())))
}

func TestEncodeDecodeError(t *testing.T) {
	kind, text := encodeError(nil)
	assert.Equal(t, int(domain.KindNone), kind)
	assert.Empty(t, text)
	assert.Nil(t, decodeError(kind, text))

	kind, text = encodeError(domain.ErrDivisionByZero)
	decoded := decodeError(kind, text)
	require.NotNil(t, decoded)
	assert.Equal(t, domain.ErrDivisionByZero.Error(), decoded.Error())
}
