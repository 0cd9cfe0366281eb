// Package listener binds the mDNS multicast socket, admits datagrams
// through per-peer rate limiting, decodes them with internal/wire, and
// hands the result to a publisher.Publisher. It is the concrete
// realization of spec.md section 6's "UDP collaborator": the parser
// package itself never imports net or any I/O package, so every socket
// and scheduling decision lives here instead.
package listener

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/netip"
	"strconv"
	"sync"
	"syscall"
	"time"

	"golang.org/x/net/ipv4"
	"golang.org/x/sys/unix"

	"github.com/mdnsbridge/mdnsbridge/internal/pool"
	"github.com/mdnsbridge/mdnsbridge/internal/summary"
	"github.com/mdnsbridge/mdnsbridge/internal/wire"
)

// MulticastAddr and Port are RFC 6762 section 5's well-known mDNS
// multicast rendezvous point.
const (
	MulticastAddr = "224.0.0.251"
	Port          = 5353
)

// maxDatagramSize bounds the pooled read buffers. wire.MaxDatagramSize
// is the parser's own ceiling; jumbo mDNS responses with many records
// still fit comfortably under the standard UDP payload limit.
const maxDatagramSize = wire.MaxDatagramSize

// DefaultWorkersPerSocket mirrors the teacher's UDP server default: a
// fixed pool sized well above what a single mDNS segment should ever
// need concurrently, rather than one goroutine per packet.
const DefaultWorkersPerSocket = 64

var bufferPool = pool.New(func() *[]byte {
	buf := make([]byte, maxDatagramSize)
	return &buf
})

// Publisher is the subset of publisher.Publisher the listener depends
// on, declared locally to avoid a listener->publisher->listener import
// cycle risk and to keep the listener testable with a fake.
type Publisher interface {
	Publish(ctx context.Context, s summary.Summary) error
}

// Limiter is the subset of RateLimiter behavior the listener depends on.
type Limiter interface {
	AllowAddr(ip netip.Addr) bool
}

// Source abstracts the UDP multicast socket so the receive loop can be
// driven by a fake in tests without opening a real socket. *net.UDPConn
// satisfies this interface as-is.
type Source interface {
	ReadFromUDP(b []byte) (int, *net.UDPAddr, error)
	Close() error
}

// Stats accumulates counters a caller can expose via the admin API.
// All methods are safe for concurrent use (spec.md section 5's
// "shared mutable state guarded the way the teacher guards it").
type Stats struct {
	mu           sync.Mutex
	Seen         uint64
	Parsed       uint64
	Dropped      uint64
	RateLimited  uint64
	ParseErrors  map[wire.Kind]uint64
}

func newStats() *Stats {
	return &Stats{ParseErrors: make(map[wire.Kind]uint64)}
}

func (s *Stats) recordSeen() {
	s.mu.Lock()
	s.Seen++
	s.mu.Unlock()
}

func (s *Stats) recordRateLimited() {
	s.mu.Lock()
	s.RateLimited++
	s.mu.Unlock()
}

func (s *Stats) recordParsed() {
	s.mu.Lock()
	s.Parsed++
	s.mu.Unlock()
}

func (s *Stats) recordDropped(kind wire.Kind) {
	s.mu.Lock()
	s.Dropped++
	s.ParseErrors[kind]++
	s.mu.Unlock()
}

// Snapshot is a point-in-time copy of Stats safe to serialize.
type Snapshot struct {
	Seen        uint64
	Parsed      uint64
	Dropped     uint64
	RateLimited uint64
	ParseErrors map[string]uint64
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := make(map[string]uint64, len(s.ParseErrors))
	for k, v := range s.ParseErrors {
		errs[k.String()] = v
	}
	return Snapshot{
		Seen:        s.Seen,
		Parsed:      s.Parsed,
		Dropped:     s.Dropped,
		RateLimited: s.RateLimited,
		ParseErrors: errs,
	}
}

// Listener reads mDNS datagrams from the multicast socket, decodes each
// with wire.Parse, and publishes the resulting summary.Summary. Parse
// failures are counted, never logged above debug: malformed multicast
// traffic sharing a segment with other responders is routine, not
// exceptional (spec.md's expanded section 4.9).
type Listener struct {
	Logger           *slog.Logger
	Publisher        Publisher
	Limiter          Limiter
	WorkersPerSocket int
	Stats            *Stats

	conn Source
	wg   sync.WaitGroup
}

// New constructs a Listener with its own Stats collector.
func New(pub Publisher, limiter Limiter, logger *slog.Logger) *Listener {
	return &Listener{
		Logger:           logger,
		Publisher:        pub,
		Limiter:          limiter,
		WorkersPerSocket: DefaultWorkersPerSocket,
		Stats:            newStats(),
	}
}

type datagram struct {
	bufPtr *[]byte
	n      int
	peer   *net.UDPAddr
}

// Run joins the mDNS multicast group and blocks until ctx is cancelled,
// dispatching received datagrams across a fixed worker pool per spec.md
// section 4.9: one receiver goroutine feeding WorkersPerSocket workers,
// no goroutine spawned per packet.
func (l *Listener) Run(ctx context.Context) error {
	if l.WorkersPerSocket <= 0 {
		l.WorkersPerSocket = DefaultWorkersPerSocket
	}

	conn, err := listenMulticast()
	if err != nil {
		return err
	}
	l.conn = conn

	ch := make(chan datagram, l.WorkersPerSocket*2)

	l.wg.Go(func() {
		l.recvLoop(ctx, ch)
	})
	for range l.WorkersPerSocket {
		l.wg.Go(func() {
			l.workerLoop(ctx, ch)
		})
	}

	<-ctx.Done()
	return l.Stop(5 * time.Second)
}

func (l *Listener) recvLoop(ctx context.Context, out chan<- datagram) {
	for {
		bufPtr := bufferPool.Get()
		buf := *bufPtr

		n, peer, err := l.conn.ReadFromUDP(buf)
		if err != nil {
			bufferPool.Put(bufPtr)
			return
		}

		if l.Limiter != nil {
			addr, ok := addrFromUDP(peer)
			if !ok || !l.Limiter.AllowAddr(addr) {
				l.Stats.recordRateLimited()
				bufferPool.Put(bufPtr)
				continue
			}
		}
		l.Stats.recordSeen()

		select {
		case out <- datagram{bufPtr, n, peer}:
		default:
			// Workers busy: drop rather than block the receive path.
			bufferPool.Put(bufPtr)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func (l *Listener) workerLoop(ctx context.Context, in <-chan datagram) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-in:
			if !ok {
				return
			}
			l.handle(ctx, d)
		}
	}
}

func (l *Listener) handle(ctx context.Context, d datagram) {
	defer bufferPool.Put(d.bufPtr)

	payload := (*d.bufPtr)[:d.n]
	msg, err := wire.Parse(payload)
	if err != nil {
		if pe, ok := err.(*wire.ParseError); ok {
			l.Stats.recordDropped(pe.Kind)
			if l.Logger != nil {
				l.Logger.Debug("dropped malformed datagram", "kind", pe.Kind.String(), "peer", d.peer.String())
			}
		}
		return
	}
	l.Stats.recordParsed()

	peerAddr, _ := addrFromUDP(d.peer)
	s := summary.From(msg, peerAddr, time.Now())

	if l.Publisher == nil {
		return
	}
	if err := l.Publisher.Publish(ctx, s); err != nil && l.Logger != nil {
		l.Logger.Warn("publish failed", "error", err)
	}
}

// Stop closes the socket and waits up to timeout for in-flight workers.
func (l *Listener) Stop(timeout time.Duration) error {
	if l.conn != nil {
		_ = l.conn.Close()
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}

func addrFromUDP(addr *net.UDPAddr) (netip.Addr, bool) {
	if addr == nil {
		return netip.Addr{}, false
	}
	ip, ok := netip.AddrFromSlice(addr.IP)
	if !ok {
		return netip.Addr{}, false
	}
	return ip.Unmap(), true
}

// listenMulticast binds a UDP4 socket on Port with SO_REUSEPORT (so
// multiple bridge instances, or the bridge alongside Avahi/Bonjour, can
// coexist on the same port) and joins the mDNS multicast group on every
// up, multicast-capable interface, grounded on the teacher's
// listenReusePort plus the multicast-join sequence used elsewhere in the
// retrieved mDNS pack.
func listenMulticast() (*net.UDPConn, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var ctrlErr error
			err := c.Control(func(fd uintptr) {
				if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
					ctrlErr = err
					return
				}
				ctrlErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
			})
			if err != nil {
				return err
			}
			return ctrlErr
		},
	}

	pc, err := lc.ListenPacket(context.Background(), "udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(Port)))
	if err != nil {
		return nil, err
	}
	conn := pc.(*net.UDPConn)

	p := ipv4.NewPacketConn(conn)
	group := net.IPv4(224, 0, 0, 251)

	ifaces, err := net.Interfaces()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	joined := 0
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagMulticast == 0 {
			continue
		}
		ifaceCopy := iface
		if err := p.JoinGroup(&ifaceCopy, &net.UDPAddr{IP: group}); err == nil {
			joined++
		}
	}
	if joined == 0 {
		_ = conn.Close()
		return nil, errNoMulticastInterfaces
	}

	_ = p.SetMulticastTTL(255)
	_ = p.SetMulticastLoopback(true)
	_ = conn.SetReadBuffer(4 * 1024 * 1024)

	return conn, nil
}

var errNoMulticastInterfaces = errors.New("listener: no multicast-capable interface available")
