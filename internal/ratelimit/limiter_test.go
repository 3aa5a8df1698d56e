package ratelimit

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestLimiter(window time.Duration, ceiling int) (*Limiter, *time.Time) {
	l := NewLimiter(window, ceiling, zap.NewNop())
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiterAllowsUpToCeiling(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 5)

	for i := 0; i < 5; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d unexpectedly denied", i+1)
		}
	}

	if l.Allow("1.2.3.4") {
		t.Fatalf("request above ceiling was allowed")
	}
}

func TestLimiterDenyDoesNotMutate(t *testing.T) {
	l, now := newTestLimiter(time.Minute, 1)

	if !l.Allow("a") {
		t.Fatalf("first request denied")
	}
	for i := 0; i < 3; i++ {
		if l.Allow("a") {
			t.Fatalf("over-quota request allowed")
		}
	}

	// The denied requests must not have extended the window.
	*now = now.Add(61 * time.Second)
	if !l.Allow("a") {
		t.Fatalf("request after window elapsed was denied")
	}
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	l, now := newTestLimiter(time.Minute, 2)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("requests within quota denied")
	}
	if l.Allow("a") {
		t.Fatalf("third request within window allowed")
	}

	*now = now.Add(time.Minute)
	if !l.Allow("a") {
		t.Fatalf("request in fresh window denied")
	}
}

func TestLimiterIsolatesIdentities(t *testing.T) {
	l, _ := newTestLimiter(time.Minute, 1)

	if !l.Allow("a") {
		t.Fatalf("first identity denied")
	}
	if !l.Allow("b") {
		t.Fatalf("second identity denied despite separate quota")
	}
	if l.Allow("a") {
		t.Fatalf("first identity exceeded quota")
	}
}

func TestLimiterPrunesStaleEntries(t *testing.T) {
	l, now := newTestLimiter(time.Minute, 5)

	l.Allow("stale")
	l.Allow("fresh")

	*now = now.Add(2 * time.Minute)
	l.Allow("fresh") // resets fresh into the current window
	l.prune()

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.entries["stale"]; ok {
		t.Fatalf("stale entry survived pruning")
	}
	if _, ok := l.entries["fresh"]; !ok {
		t.Fatalf("fresh entry was pruned")
	}
}
