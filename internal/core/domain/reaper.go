package domain

import "time"

// ReaperConfig controls how idle sessions are closed.
type ReaperConfig struct {
	// Enabled is the master switch for the reaper.
	Enabled bool

	// Interval is how often idle sessions are looked for.
	Interval time.Duration

	// IdleTimeout is how long a session may go without a press.
	IdleTimeout time.Duration
}

// DefaultReaperConfig returns the reaper defaults: a sweep every minute,
// closing sessions idle for more than 30 minutes.
func DefaultReaperConfig() ReaperConfig {
	return ReaperConfig{
		Enabled:     true,
		Interval:    time.Minute,
		IdleTimeout: 30 * time.Minute,
	}
}

// IsValid returns true if both durations are positive.
func (c ReaperConfig) IsValid() bool {
	return c.Interval > 0 && c.IdleTimeout > 0
}

// ReapResult is the outcome of one sweep.
type ReapResult struct {
	// StartedAt is when the sweep started.
	StartedAt time.Time

	// EndedAt is when the sweep completed.
	EndedAt time.Time

	// Closed lists the sessions that were closed.
	Closed []string

	// Error contains the error message if the sweep failed.
	Error string
}
