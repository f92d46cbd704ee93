package driven

import (
	"context"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

// SessionStore holds live input sessions.
type SessionStore interface {
	// Save stores or updates a session.
	Save(ctx context.Context, session domain.SessionState) error

	// Get retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.SessionState, error)

	// Delete removes a session.
	// Returns domain.ErrSessionNotFound if it does not exist.
	Delete(ctx context.Context, id string) error

	// List returns all live sessions.
	List(ctx context.Context) ([]domain.SessionState, error)
}
