package listener

import (
	"math"
	"net/netip"
	"sync"
	"time"
)

// This file implements pre-parse admission control using token bucket
// rate limiting, adapted from the teacher's per-IP limiter
// (internal/server/rate_limit.go). mDNS has no global or per-prefix tier
// in this bridge: a single noisy peer on a shared multicast segment is
// the failure mode worth bounding, so only the per-IP level survives the
// adaptation.

// RateLimiterConfig configures a RateLimiter.
type RateLimiterConfig struct {
	QPS             float64       // Tokens replenished per second per peer.
	Burst           int           // Maximum tokens per peer.
	CleanupInterval time.Duration // How often stale peer entries are swept.
	MaxEntries      int           // Maximum tracked peer addresses.
}

// RateLimiter bounds how many datagrams per second are admitted from a
// single source address before they reach wire.Parse. A nil *RateLimiter
// allows everything, same convention as the teacher's limiter.
type RateLimiter struct {
	rate            float64
	burst           float64
	cleanupInterval time.Duration
	maxEntries      int

	mu          sync.Mutex
	lastCleanup time.Time
	lastUpdate  map[netip.Addr]time.Time
	tokens      map[netip.Addr]float64
}

// NewRateLimiter builds a RateLimiter from cfg. QPS or Burst <= 0
// disables limiting entirely (AllowAddr always returns true).
func NewRateLimiter(cfg RateLimiterConfig) *RateLimiter {
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = 1
	}
	ci := cfg.CleanupInterval
	if ci <= 0 {
		ci = 60 * time.Second
	}
	return &RateLimiter{
		rate:            cfg.QPS,
		burst:           float64(cfg.Burst),
		cleanupInterval: ci,
		maxEntries:      maxEntries,
		lastCleanup:     time.Now(),
		lastUpdate:      make(map[netip.Addr]time.Time),
		tokens:          make(map[netip.Addr]float64),
	}
}

// AllowAddr reports whether a datagram from ip should be admitted, and
// consumes a token from that peer's bucket if so.
func (r *RateLimiter) AllowAddr(ip netip.Addr) bool {
	if r == nil || r.rate <= 0.0 || r.burst <= 0.0 {
		return true
	}

	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastCleanup) > r.cleanupInterval {
		r.cleanupLocked(now)
	}

	last, exists := r.lastUpdate[ip]
	if !exists {
		if len(r.lastUpdate) >= r.maxEntries {
			r.cleanupLocked(now)
			if len(r.lastUpdate) >= r.maxEntries {
				return false
			}
		}
		r.lastUpdate[ip] = now
		r.tokens[ip] = r.burst - 1.0
		return true
	}

	elapsed := now.Sub(last).Seconds()
	r.lastUpdate[ip] = now

	tokens := r.tokens[ip]
	if elapsed > 0 {
		tokens = math.Min(r.burst, tokens+(elapsed*r.rate))
	}

	if tokens >= 1.0 {
		r.tokens[ip] = tokens - 1.0
		return true
	}
	r.tokens[ip] = tokens
	return false
}

// cleanupLocked removes peers not seen since the cleanup window. Must be
// called with r.mu held.
func (r *RateLimiter) cleanupLocked(now time.Time) {
	staleBefore := now.Add(-r.cleanupInterval)
	for addr, last := range r.lastUpdate {
		if !last.After(staleBefore) {
			delete(r.lastUpdate, addr)
			delete(r.tokens, addr)
		}
	}
	r.lastCleanup = now
}
