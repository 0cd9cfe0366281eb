package listener

import (
	"context"
	"net"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdnsbridge/mdnsbridge/internal/summary"
	"github.com/mdnsbridge/mdnsbridge/internal/wire"
)

type fakePublisher struct {
	published []summary.Summary
	err       error
}

func (f *fakePublisher) Publish(_ context.Context, s summary.Summary) error {
	f.published = append(f.published, s)
	return f.err
}

func wellFormedQuery() []byte {
	return []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x10, 0x5F, 0x73, 0x70, 0x6F, 0x74, 0x69, 0x66, 0x79, 0x2D, 0x63, 0x6F,
		0x6E, 0x6E, 0x65, 0x63, 0x74,
		0x04, 0x5F, 0x74, 0x63, 0x70,
		0x05, 0x6C, 0x6F, 0x63, 0x61, 0x6C,
		0x00,
		0x00, 0x0C, 0x00, 0x01,
	}
}

func TestListener_Handle_PublishesOnSuccessfulParse(t *testing.T) {
	pub := &fakePublisher{}
	l := New(pub, nil, nil)

	payload := wellFormedQuery()
	bufPtr := bufferPool.Get()
	n := copy((*bufPtr)[:], payload)

	l.handle(context.Background(), datagram{
		bufPtr: bufPtr,
		n:      n,
		peer:   &net.UDPAddr{IP: net.ParseIP("192.0.2.7"), Port: 5353},
	})

	require.Len(t, pub.published, 1)
	assert.Equal(t, "192.0.2.7", pub.published[0].Peer)
	require.Len(t, pub.published[0].Questions, 1)
	assert.Equal(t, "_spotify-connect._tcp.local.", pub.published[0].Questions[0].Name)

	snap := l.Stats.Snapshot()
	assert.Equal(t, uint64(1), snap.Parsed)
	assert.Equal(t, uint64(0), snap.Dropped)
}

func TestListener_Handle_DropsMalformedDatagramWithoutPublishing(t *testing.T) {
	pub := &fakePublisher{}
	l := New(pub, nil, nil)

	bufPtr := bufferPool.Get()
	n := copy((*bufPtr)[:], make([]byte, 4)) // shorter than HeaderSize

	l.handle(context.Background(), datagram{
		bufPtr: bufPtr,
		n:      n,
		peer:   &net.UDPAddr{IP: net.ParseIP("192.0.2.7"), Port: 5353},
	})

	assert.Empty(t, pub.published)
	snap := l.Stats.Snapshot()
	assert.Equal(t, uint64(1), snap.Dropped)
	assert.Equal(t, uint64(1), snap.ParseErrors[wire.ShortHeader.String()])
}

// fakeSource hands out a single well-formed datagram on the first
// ReadFromUDP call, then reports a permanent error so recvLoop exits
// cleanly.
type fakeSource struct {
	payload []byte
	peer    *net.UDPAddr
	served  int
}

func (f *fakeSource) ReadFromUDP(b []byte) (int, *net.UDPAddr, error) {
	if f.served > 0 {
		return 0, nil, errClosedFakeSource
	}
	f.served++
	return copy(b, f.payload), f.peer, nil
}

func (f *fakeSource) Close() error { return nil }

var errClosedFakeSource = net.ErrClosed

type denyAllLimiter struct{}

func (denyAllLimiter) AllowAddr(_ netip.Addr) bool { return false }

func TestListener_RecvLoop_NeverParsesRateLimitedDatagrams(t *testing.T) {
	pub := &fakePublisher{}
	l := New(pub, denyAllLimiter{}, nil)
	l.conn = &fakeSource{
		payload: wellFormedQuery(),
		peer:    &net.UDPAddr{IP: net.ParseIP("192.0.2.9"), Port: 5353},
	}

	ch := make(chan datagram, 4)
	l.recvLoop(context.Background(), ch)
	close(ch)

	assert.Empty(t, ch, "a rate-limited datagram must never reach the dispatch channel, and so never reaches wire.Parse")
	snap := l.Stats.Snapshot()
	assert.Equal(t, uint64(1), snap.RateLimited)
	assert.Equal(t, uint64(0), snap.Seen)
	assert.Equal(t, uint64(0), snap.Parsed)
	assert.Empty(t, pub.published)
}
