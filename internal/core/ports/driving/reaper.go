package driving

import "context"

// Reaper closes sessions that have gone idle.
type Reaper interface {
	// Start begins sweeping for idle sessions.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the reaper.
	Stop() error
}
