package driving

import (
	"context"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

// SessionService multiplexes independent input sessions.
type SessionService interface {
	// Open starts a new empty session and returns its ID.
	Open(ctx context.Context) (string, error)

	// Press feeds tokens to a session in order and returns the final display.
	Press(ctx context.Context, id string, tokens ...string) (domain.Display, error)

	// Get returns what a session currently shows.
	Get(ctx context.Context, id string) (domain.Display, error)

	// Close discards a session.
	Close(ctx context.Context, id string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
