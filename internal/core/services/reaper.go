package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/core/ports/driving"
	"github.com/custodia-labs/abacus/internal/logger"
)

// Ensure SessionReaper implements the interface.
var _ driving.Reaper = (*SessionReaper)(nil)

// idleCloser closes sessions that have not been pressed for a while.
type idleCloser interface {
	CloseIdle(ctx context.Context, idle time.Duration) ([]string, error)
}

// SessionReaper periodically closes idle sessions.
// It is a pure core service with no external control API.
type SessionReaper struct {
	config   domain.ReaperConfig
	sessions idleCloser

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	last    *domain.ReapResult
}

// NewSessionReaper creates a reaper with configuration.
// Invalid durations fall back to the defaults.
func NewSessionReaper(config domain.ReaperConfig, sessions *SessionManager) *SessionReaper {
	return newSessionReaper(config, sessions)
}

func newSessionReaper(config domain.ReaperConfig, sessions idleCloser) *SessionReaper {
	if !config.IsValid() {
		enabled := config.Enabled
		config = domain.DefaultReaperConfig()
		config.Enabled = enabled
	}
	return &SessionReaper{
		config:   config,
		sessions: sessions,
	}
}

// Start begins the reaper loop. This method blocks until Stop is called
// or ctx is cancelled. A disabled reaper returns immediately.
func (r *SessionReaper) Start(ctx context.Context) error {
	if !r.config.Enabled {
		return nil
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil // Already running
	}
	r.running = true
	r.stopCh = make(chan struct{})
	stopCh := r.stopCh
	r.mu.Unlock()

	return r.run(ctx, stopCh)
}

// Stop gracefully shuts down the reaper.
func (r *SessionReaper) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil
	}
	r.running = false
	close(r.stopCh)
	return nil
}

// run is the main reaper loop.
func (r *SessionReaper) run(ctx context.Context, stopCh <-chan struct{}) error {
	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			r.Sweep(ctx)
		}
	}
}

// Sweep closes every session idle for longer than the timeout.
func (r *SessionReaper) Sweep(ctx context.Context) domain.ReapResult {
	result := domain.ReapResult{StartedAt: time.Now()}

	closed, err := r.sessions.CloseIdle(ctx, r.config.IdleTimeout)
	result.EndedAt = time.Now()
	result.Closed = closed
	if err != nil {
		result.Error = err.Error()
		logger.Warn("reaper: sweep failed: %v", err)
	} else if len(closed) > 0 {
		logger.Debug("reaper: closed %d idle sessions", len(closed))
	}

	r.mu.Lock()
	r.last = &result
	r.mu.Unlock()

	return result
}

// LastResult returns the outcome of the most recent sweep, nil before the first.
func (r *SessionReaper) LastResult() *domain.ReapResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	res := *r.last
	return &res
}

// Running reports whether the loop is active.
func (r *SessionReaper) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
