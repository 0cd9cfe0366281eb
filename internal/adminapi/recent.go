package adminapi

import (
	"sync"

	"github.com/mdnsbridge/mdnsbridge/internal/summary"
)

// RecentBuffer keeps the last N summaries seen, for the /debug page.
// It has no Publish method of its own: cmd/mdnsbridged's fanout calls Add
// alongside the real sink (e.g. publisher.Stdout), so neither depends on
// the other.
type RecentBuffer struct {
	mu    sync.Mutex
	items []summary.Summary
	cap   int
	next  int
	full  bool
}

// NewRecentBuffer builds a RecentBuffer holding up to n summaries. n<=0
// is treated as 1.
func NewRecentBuffer(n int) *RecentBuffer {
	if n <= 0 {
		n = 1
	}
	return &RecentBuffer{items: make([]summary.Summary, n), cap: n}
}

// Add records s, evicting the oldest entry once the buffer is full.
func (b *RecentBuffer) Add(s summary.Summary) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[b.next] = s
	b.next = (b.next + 1) % b.cap
	if b.next == 0 {
		b.full = true
	}
}

// Recent returns the buffered summaries, newest first.
func (b *RecentBuffer) Recent() []summary.Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	var n int
	if b.full {
		n = b.cap
	} else {
		n = b.next
	}

	out := make([]summary.Summary, 0, n)
	for i := 0; i < n; i++ {
		idx := (b.next - 1 - i + b.cap) % b.cap
		out = append(out, b.items[idx])
	}
	return out
}
