// Package ratelimit provides per-client token bucket rate limiting for the
// caution API.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter tracks one token bucket per client key (normally the remote IP).
// Buckets are created lazily on first use.
type Limiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	rps      float64
	burst    int
}

// NewLimiter creates a rate limiter with the specified per-client RPS and
// burst capacity.
func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
	}
}

func (l *Limiter) getLimiter(client string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[client]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.limiters[client]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(rate.Limit(l.rps), l.burst)
	l.limiters[client] = limiter
	return limiter
}

// Allow reports whether a request from the client is within budget.
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

// Wait blocks until a request from the client is allowed or the context is
// cancelled.
func (l *Limiter) Wait(ctx context.Context, client string) error {
	return l.getLimiter(client).Wait(ctx)
}

// SetRPS updates the per-client requests per second for all existing buckets
// and for buckets created afterwards.
func (l *Limiter) SetRPS(rps float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rps = rps
	for _, limiter := range l.limiters {
		limiter.SetLimit(rate.Limit(rps))
	}
}

// SetBurst updates the burst capacity for all buckets.
func (l *Limiter) SetBurst(burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.burst = burst
	for _, limiter := range l.limiters {
		limiter.SetBurst(burst)
	}
}

// Stats returns the current bucket state for every known client.
func (l *Limiter) Stats() map[string]ClientStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := make(map[string]ClientStats)
	now := time.Now()

	for client, limiter := range l.limiters {
		reservation := limiter.Reserve()
		delay := reservation.Delay()
		reservation.Cancel() // Cancel the reservation since we're just checking

		stats[client] = ClientStats{
			Client:          client,
			RPS:             float64(limiter.Limit()),
			Burst:           limiter.Burst(),
			TokensAvailable: limiter.Tokens(),
			NextAllowedAt:   now.Add(delay),
			Delay:           delay,
		}
	}

	return stats
}

// Reset clears all client buckets.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters = make(map[string]*rate.Limiter)
}

// ClientStats represents the bucket state for a single client.
type ClientStats struct {
	Client          string        `json:"client"`
	RPS             float64       `json:"rps"`
	Burst           int           `json:"burst"`
	TokensAvailable float64       `json:"tokens_available"`
	NextAllowedAt   time.Time     `json:"next_allowed_at"`
	Delay           time.Duration `json:"delay"`
}

// IsThrottled reports whether the client would currently have to wait.
func (s *ClientStats) IsThrottled() bool {
	return s.Delay > 0
}
