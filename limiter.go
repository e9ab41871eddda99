package folio

import (
	"sync"
	"time"
)

// LoginLimiter counts login attempts per client IP in a sliding window.
// A successful login clears the count, so only failures accumulate.
type LoginLimiter struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewLoginLimiter allows up to max failures per window for each IP.
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

// Stop ends the background sweeper.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
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
			for ip := range l.failures {
				l.prune(ip, time.Now())
			}
			l.mu.Unlock()
		}
	}
}

// prune drops expired entries for ip. Caller holds l.mu.
func (l *LoginLimiter) prune(ip string, now time.Time) int {
	cutoff := now.Add(-l.window)
	hits := l.failures[ip]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, ip)
		return 0
	}
	l.failures[ip] = kept
	return len(kept)
}

// Allow reports whether ip may attempt a login and, if so, counts the
// attempt against its window. Checking and counting share one lock, so
// concurrent attempts from one ip cannot exceed max. Call Reset after a
// successful login.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	if l.prune(ip, now) >= l.max {
		return false
	}
	l.failures[ip] = append(l.failures[ip], now)
	return true
}

// Reset forgets all failures for ip, used after a successful login.
func (l *LoginLimiter) Reset(ip string) {
	l.mu.Lock()
	delete(l.failures, ip)
	l.mu.Unlock()
}
