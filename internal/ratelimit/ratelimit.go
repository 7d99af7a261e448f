package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count     int
	resetTime time.Time
}

// Limiter is a fixed-window rate limiter keyed by client identifier. State
// is in-memory and grows with the number of distinct clients; fine for a
// single event's guest list, not for a long-running multi-tenant deployment.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

// NewLimiter creates a limiter admitting up to limit requests per period
// for each client.
func NewLimiter(limit int, period time.Duration) *Limiter {
	return &Limiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow reports whether a request from the given client is admitted. The
// first request of a window (or any request after the window has elapsed)
// starts a fresh counter.
func (l *Limiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[client]
	if !ok || now.After(w.resetTime) {
		l.windows[client] = &window{count: 1, resetTime: now.Add(l.period)}
		return true
	}

	if w.count >= l.limit {
		return false
	}

	w.count++
	return true
}
