package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter caps attempts per identifier within a fixed window. The memory
// implementation is process-local; multi-instance deployments should use the
// Redis-backed implementation so all instances share one counter.
type Limiter interface {
	// Allow records an attempt for identifier. It returns true while the
	// attempt count within the current window is at or under maxAttempts;
	// the window resets wholesale once it expires.
	Allow(ctx context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error)

	// RemainingSeconds reports how long until the identifier's window resets,
	// floor-clamped to zero.
	RemainingSeconds(ctx context.Context, identifier string) (int, error)
}

type entry struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is an in-memory fixed-window limiter.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewMemoryLimiter creates a new in-memory limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, identifier string, maxAttempts int, window time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[identifier]
	if !ok || e.resetAt.Before(now) {
		// First attempt or window expired
		l.entries[identifier] = &entry{count: 1, resetAt: now.Add(window)}
		return true, nil
	}

	if e.count >= maxAttempts {
		return false, nil
	}

	e.count++
	return true, nil
}

// RemainingSeconds implements Limiter.
func (l *MemoryLimiter) RemainingSeconds(_ context.Context, identifier string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identifier]
	if !ok {
		return 0, nil
	}

	remaining := e.resetAt.Sub(l.now())
	if remaining <= 0 {
		return 0, nil
	}
	return int((remaining + time.Second - 1) / time.Second), nil
}

// Prune evicts entries whose window has already expired. Expired entries
// self-reset on next access, so pruning only bounds memory.
func (l *MemoryLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, e := range l.entries {
		if e.resetAt.Before(now) {
			delete(l.entries, key)
		}
	}
}

// StartPruning launches a background sweep at the given interval. The sweep is
// advisory cleanup; skipping it entirely loses no correctness. The goroutine
// runs until process exit, no teardown is needed.
func (l *MemoryLimiter) StartPruning(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			l.Prune()
		}
	}()
}
