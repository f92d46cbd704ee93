package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driven"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
	"github.com/custodia-labs/abacus/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

// SessionManager multiplexes input sessions kept in a SessionStore.
type SessionManager struct {
	mu    sync.Mutex
	store driven.SessionStore
	calc  driving.CalculatorService
}

// NewSessionManager creates a new session manager.
// If calc is nil, a default Evaluator is used.
func NewSessionManager(store driven.SessionStore, calc driving.CalculatorService) *SessionManager {
	if calc == nil {
		calc = NewEvaluator()
	}
	return &SessionManager{
		store: store,
		calc:  calc,
	}
}

// Open starts a new empty session.
func (m *SessionManager) Open(ctx context.Context) (string, error) {
	now := time.Now()
	state := domain.SessionState{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.Save(ctx, state); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	logger.Debug("session %s opened", state.ID)
	return state.ID, nil
}

// Press feeds tokens to a session in order. Aliases such as "backspace"
// are normalised to keypad tokens first.
func (m *SessionManager) Press(ctx context.Context, id string, tokens ...string) (domain.Display, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, err := m.store.Get(ctx, id)
	if err != nil {
		return domain.Display{}, err
	}
	if len(tokens) == 0 {
		return state.Display(), nil
	}

	session := RestoreInputSession(m.calc, *state)
	for _, t := range tokens {
		session.Press(domain.NormalizeToken(t))
	}

	session.saveTo(state)
	state.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, *state); err != nil {
		return domain.Display{}, fmt.Errorf("save session: %w", err)
	}

	return state.Display(), nil
}

// Get returns what a session currently shows.
func (m *SessionManager) Get(ctx context.Context, id string) (domain.Display, error) {
	state, err := m.store.Get(ctx, id)
	if err != nil {
		return domain.Display{}, err
	}
	return state.Display(), nil
}

// Close discards a session.
func (m *SessionManager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Debug("session %s closed", id)
	return nil
}

// CloseIdle closes every session not pressed for longer than idle and
// returns their IDs.
func (m *SessionManager) CloseIdle(ctx context.Context, idle time.Duration) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	states, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var closed []string
	cutoff := time.Now().Add(-idle)
	for i := range states {
		if !states[i].UpdatedAt.Before(cutoff) {
			continue
		}
		if err := m.store.Delete(ctx, states[i].ID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
			return closed, err
		}
		closed = append(closed, states[i].ID)
	}
	return closed, nil
}

// List returns the IDs of all live sessions, oldest first.
func (m *SessionManager) List(ctx context.Context) ([]string, error) {
	states, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].CreatedAt.Before(states[j].CreatedAt)
	})

	ids := make([]string, len(states))
	for i := range states {
		ids[i] = states[i].ID
	}
	return ids, nil
}
