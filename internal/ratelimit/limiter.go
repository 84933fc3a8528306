// Package ratelimit implements fixed-window request admission keyed by
// client identity. Counters reset at window boundaries rather than
// continuously; callers wanting smoother limiting can swap the
// implementation behind Admit without touching callers.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	DefaultLimit  = 50
	DefaultWindow = 30 * time.Second
)

// Decision is the outcome of a single admission check. It is derived
// per request and never stored.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

type clientWindow struct {
	count       int
	windowStart time.Time
}

// Limiter tracks one window per client identity. The window table is
// the only shared mutable state; a single mutex covers both admission
// and the janitor sweep so check-then-increment is atomic.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*clientWindow

	limit  int
	window time.Duration
	now    func() time.Time
}

type Option func(*Limiter)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func New(limit int, window time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{
		windows: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) Limit() int { return l.limit }

func (l *Limiter) Window() time.Duration { return l.window }

// Admit records one request for identity and decides whether it fits
// the current window's quota. A rejected request does not mutate the
// window.
func (l *Limiter) Admit(identity string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identity]
	if !ok || now.Sub(w.windowStart) >= l.window {
		l.windows[identity] = &clientWindow{count: 1, windowStart: now}
		return Decision{Allowed: true, Remaining: l.limit - 1, ResetAt: now.Add(l.window)}
	}

	resetAt := w.windowStart.Add(l.window)
	if w.count >= l.limit {
		return Decision{Allowed: false, Remaining: 0, ResetAt: resetAt}
	}

	w.count++
	return Decision{Allowed: true, Remaining: l.limit - w.count, ResetAt: resetAt}
}

// Sweep drops every window older than the window duration and reports
// how many were removed. Called on the janitor interval this bounds
// the table to clients active in the last ~1.5 windows.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, w := range l.windows {
		if now.Sub(w.windowStart) >= l.window {
			delete(l.windows, id)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps expired windows every half window until ctx is
// cancelled.
func (l *Limiter) StartJanitor(ctx context.Context) {
	ticker := time.NewTicker(l.window / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				slog.Debug("rate limit sweep", "removed", removed)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Size reports the number of tracked identities.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}
