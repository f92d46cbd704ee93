package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
// Sessions vanish with the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.SessionState
	limit    int
}

// NewSessionStore creates a new in-memory session store.
// limit caps the number of live sessions; zero means unlimited.
func NewSessionStore(limit int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.SessionState),
		limit:    limit,
	}
}

// Save stores or updates a session.
// Adding a session beyond the limit fails with domain.ErrInvalidInput.
func (s *SessionStore) Save(_ context.Context, session domain.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; !exists && s.limit > 0 && len(s.sessions) >= s.limit {
		return domain.ErrInvalidInput
	}
	s.sessions[session.ID] = session
	return nil
}

// Get retrieves a copy of a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// List returns all live sessions in no particular order.
func (s *SessionStore) List(_ context.Context) ([]domain.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.SessionState, 0, len(s.sessions))
	for _, session := range s.sessions {
		result = append(result, session)
	}
	return result, nil
}
