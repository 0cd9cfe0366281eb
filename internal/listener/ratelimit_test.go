package listener

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_NilAllowsEverything(t *testing.T) {
	var r *RateLimiter
	assert.True(t, r.AllowAddr(netip.MustParseAddr("192.0.2.1")))
}

func TestRateLimiter_DisabledByNonPositiveRate(t *testing.T) {
	r := NewRateLimiter(RateLimiterConfig{QPS: 0, Burst: 10})
	for i := 0; i < 100; i++ {
		assert.True(t, r.AllowAddr(netip.MustParseAddr("192.0.2.1")))
	}
}

func TestRateLimiter_BurstThenDeny(t *testing.T) {
	r := NewRateLimiter(RateLimiterConfig{QPS: 1, Burst: 3, CleanupInterval: time.Minute, MaxEntries: 10})
	peer := netip.MustParseAddr("192.0.2.5")

	assert.True(t, r.AllowAddr(peer))
	assert.True(t, r.AllowAddr(peer))
	assert.True(t, r.AllowAddr(peer))
	assert.False(t, r.AllowAddr(peer), "fourth immediate request exceeds the burst of 3")
}

func TestRateLimiter_IndependentPeers(t *testing.T) {
	r := NewRateLimiter(RateLimiterConfig{QPS: 1, Burst: 1, CleanupInterval: time.Minute, MaxEntries: 10})
	a := netip.MustParseAddr("192.0.2.10")
	b := netip.MustParseAddr("192.0.2.20")

	assert.True(t, r.AllowAddr(a))
	assert.False(t, r.AllowAddr(a))
	assert.True(t, r.AllowAddr(b), "a busy peer must not throttle a distinct peer's bucket")
}

func TestRateLimiter_MaxEntriesDeniesNewPeerAtCapacity(t *testing.T) {
	r := NewRateLimiter(RateLimiterConfig{QPS: 1, Burst: 1, CleanupInterval: time.Hour, MaxEntries: 1})
	a := netip.MustParseAddr("192.0.2.1")
	b := netip.MustParseAddr("192.0.2.2")

	assert.True(t, r.AllowAddr(a))
	assert.False(t, r.AllowAddr(b), "a brand-new peer is denied once the tracked-peer table is at capacity")
}
