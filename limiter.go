package stanza

import (
	"sync"
	"time"
)

// LoginLimiter caps failed login attempts per client address inside a
// sliding window. Successful logins are never recorded, so a legitimate
// user only locks themselves out by repeatedly failing.
type LoginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
	done     chan struct{}
}

// NewLoginLimiter creates a limiter allowing max failures per window and
// starts a background sweep that drops idle addresses.
func NewLoginLimiter(max int, window time.Duration) *LoginLimiter {
	l := &LoginLimiter{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
		done:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Check reports whether the address is still under the failure cap. It
// prunes expired entries but records nothing; call Record on failure.
func (l *LoginLimiter) Check(addr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(addr)) < l.max
}

// Record registers a failed login attempt for the address.
func (l *LoginLimiter) Record(addr string) {
	l.mu.Lock()
	l.failures[addr] = append(l.prune(addr), time.Now())
	l.mu.Unlock()
}

// Close stops the background sweep.
func (l *LoginLimiter) Close() {
	close(l.done)
}

// prune drops failures older than the window. Callers hold l.mu.
func (l *LoginLimiter) prune(addr string) []time.Time {
	cutoff := time.Now().Add(-l.window)
	kept := l.failures[addr][:0]
	for _, t := range l.failures[addr] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, addr)
		return nil
	}
	l.failures[addr] = kept
	return kept
}

func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			for addr := range l.failures {
				l.prune(addr)
			}
			l.mu.Unlock()
		}
	}
}
