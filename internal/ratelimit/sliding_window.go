package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindow caps the number of accepted requests per client within a
// trailing time window. Rejected attempts are not recorded, so a blocked
// client does not extend its own penalty. State is per-process and lost
// on restart; throttling here is approximate, not a durability guarantee.
type SlidingWindow struct {
	mu       sync.Mutex
	window   time.Duration
	max      int
	now      func() time.Time
	hits     map[string][]time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSlidingWindow creates a limiter allowing max requests per window
// for each client. A non-positive window or max disables limiting.
// A background sweep evicts clients that have gone quiet; call Stop
// when the limiter is no longer needed.
func NewSlidingWindow(window time.Duration, max int) *SlidingWindow {
	sw := &SlidingWindow{
		window: window,
		max:    max,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
		stop:   make(chan struct{}),
	}
	go sw.sweep()
	return sw
}

// Allow reports whether the client may proceed, recording the request
// timestamp when it may.
func (sw *SlidingWindow) Allow(clientID string) bool {
	if sw.max <= 0 || sw.window <= 0 {
		return true
	}

	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	cutoff := now.Add(-sw.window)
	kept := sw.hits[clientID][:0]
	for _, ts := range sw.hits[clientID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= sw.max {
		sw.hits[clientID] = kept
		return false
	}

	sw.hits[clientID] = append(kept, now)
	return true
}

// Stop terminates the background sweep. Safe to call more than once.
func (sw *SlidingWindow) Stop() {
	sw.stopOnce.Do(func() {
		close(sw.stop)
	})
}

// sweep periodically drops clients whose newest entry fell out of the
// window, keeping the map from growing one entry per IP ever seen.
func (sw *SlidingWindow) sweep() {
	interval := sw.window
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-sw.stop:
			return
		case <-ticker.C:
			sw.mu.Lock()
			cutoff := sw.now().Add(-sw.window)
			for id, hits := range sw.hits {
				if len(hits) == 0 || !hits[len(hits)-1].After(cutoff) {
					delete(sw.hits, id)
				}
			}
			sw.mu.Unlock()
		}
	}
}
