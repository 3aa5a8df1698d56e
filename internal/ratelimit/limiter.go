package ratelimit

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type entry struct {
	count       int
	windowStart time.Time
}

// Limiter is a fixed-window request counter keyed by client identity. It is
// the only state shared across in-flight requests, so every operation takes
// the mutex. Stale identities are pruned periodically; otherwise the map
// would grow for the life of the process.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry

	window  time.Duration
	ceiling int

	now    func() time.Time
	stop   chan struct{}
	logger *zap.Logger
}

func NewLimiter(window time.Duration, ceiling int, logger *zap.Logger) *Limiter {
	return &Limiter{
		entries: make(map[string]*entry),
		window:  window,
		ceiling: ceiling,
		now:     time.Now,
		stop:    make(chan struct{}),
		logger:  logger,
	}
}

// Allow records one request for identity and reports whether it is within
// quota. A fresh or elapsed window resets the count to 1; at the ceiling
// the request is denied without mutating state.
func (l *Limiter) Allow(identity string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[identity]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.entries[identity] = &entry{count: 1, windowStart: now}
		return true
	}

	if e.count >= l.ceiling {
		return false
	}

	e.count++
	return true
}

// StartJanitor evicts entries whose window has lapsed, every interval,
// until Close is called.
func (l *Limiter) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.prune()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *Limiter) Close() {
	close(l.stop)
}

func (l *Limiter) prune() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for identity, e := range l.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(l.entries, identity)
			removed++
		}
	}

	if removed > 0 && l.logger != nil {
		l.logger.Debug("Pruned stale rate limit entries",
			zap.Int("removed", removed),
			zap.Int("remaining", len(l.entries)))
	}
}
