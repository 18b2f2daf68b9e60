package memory

import (
	"context"
	"sync"
	"time"
)

// SubmissionLimiter is a fixed-window counter per (user, problem) held in process.
// It is used when Redis is not configured.
type SubmissionLimiter struct {
	limit  int
	window time.Duration
	clock  func() time.Time

	mu        sync.Mutex
	windows   map[string]window
	nextSweep time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

func NewSubmissionLimiter(limit int, per time.Duration) *SubmissionLimiter {
	return NewSubmissionLimiterWithClock(limit, per, time.Now)
}

// NewSubmissionLimiterWithClock is test-only for deterministic windows.
func NewSubmissionLimiterWithClock(limit int, per time.Duration, clock func() time.Time) *SubmissionLimiter {
	return &SubmissionLimiter{
		limit:   limit,
		window:  per,
		clock:   clock,
		windows: make(map[string]window),
	}
}

func (l *SubmissionLimiter) Allow(_ context.Context, userID, problemID string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}
	now := l.clock()
	key := userID + ":" + problemID

	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = window{expiresAt: now.Add(l.window)}
	}
	w.count++
	l.windows[key] = w
	l.sweepLocked(now)
	return w.count <= l.limit, nil
}

// sweepLocked drops expired windows at most once per window length.
func (l *SubmissionLimiter) sweepLocked(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	l.nextSweep = now.Add(l.window)
	for k, w := range l.windows {
		if !now.Before(w.expiresAt) {
			delete(l.windows, k)
		}
	}
}
