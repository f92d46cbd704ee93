package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

func TestNewSessionStore(t *testing.T) {
	store := NewSessionStore(0)
	require.NotNil(t, store)
	assert.NotNil(t, store.sessions)
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()

	state := domain.SessionState{
		ID:        "s-1",
		Buffer:    "6*7",
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.Save(ctx, state))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "6*7", got.Buffer)
}

func TestSessionStore_GetReturnsCopy(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.SessionState{ID: "s-1", Buffer: "1"}))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	got.Buffer = "changed"

	again, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "1", again.Buffer)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	store := NewSessionStore(0)

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.SessionState{ID: "s-1"}))

	require.NoError(t, store.Delete(ctx, "s-1"))

	_, err := store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "s-1"), domain.ErrSessionNotFound)
}

func TestSessionStore_List(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, domain.SessionState{ID: "a"}))
	require.NoError(t, store.Save(ctx, domain.SessionState{ID: "b"}))

	sessions, err := store.List(ctx)

	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestSessionStore_Limit(t *testing.T) {
	store := NewSessionStore(1)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.SessionState{ID: "a"}))
	// Updating an existing session is always allowed.
	require.NoError(t, store.Save(ctx, domain.SessionState{ID: "a", Buffer: "1"}))

	err := store.Save(ctx, domain.SessionState{ID: "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore(0)
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := string(rune('a' + n))
			_ = store.Save(ctx, domain.SessionState{ID: id})
			_, _ = store.Get(ctx, id)
		}(i)
	}

	wg.Wait()
	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 20)
}
