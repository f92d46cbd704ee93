package mcp

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/abacus/internal/core/domain"
)

// RateLimiter caps how fast tool calls are served.
// It uses a token bucket shared by every client of the server.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter from the MCP settings.
// Unusable limits fall back to the defaults.
func NewRateLimiter(cfg domain.MCPSettings) *RateLimiter {
	if !cfg.IsValid() {
		cfg = domain.DefaultAppSettings().MCP
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// Allow reports whether a call may proceed now, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}

// check returns domain.ErrRateLimited when no token is available.
func (r *RateLimiter) check(tool string) error {
	if r.Allow() {
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrRateLimited, tool)
}

// Limit returns the sustained rate in requests per second.
func (r *RateLimiter) Limit() float64 {
	return float64(r.limiter.Limit())
}

// Burst returns the bucket size.
func (r *RateLimiter) Burst() int {
	return r.limiter.Burst()
}
