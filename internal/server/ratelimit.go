package server

import (
	"sync"

	"golang.org/x/time/rate"
)

// ipLimiter implements per-client rate limiting for the login endpoint.
// One token bucket per remote IP, created on first sight.
type ipLimiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// newIPLimiter creates a limiter allowing perMinute attempts per IP.
func newIPLimiter(perMinute float64, burst int) *ipLimiter {
	if burst <= 0 {
		burst = 3
	}
	return &ipLimiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(perMinute / 60.0),
		defaultBurst: burst,
	}
}

// Allow checks if a request from ip is allowed without waiting.
func (l *ipLimiter) Allow(ip string) bool {
	return l.getLimiter(ip).Allow()
}

// getLimiter returns the rate limiter for an IP.
func (l *ipLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[ip]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring the write lock.
	if limiter, exists = l.limiters[ip]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[ip] = limiter
	return limiter
}
