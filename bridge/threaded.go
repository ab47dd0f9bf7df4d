// File: bridge/threaded.go
// Author: momentics <momentics@gmail.com>
//
// Goroutine-per-connection forwarder variant. Same forwarding contract as
// the event-loop core, kept as a separate implementation: blocking reads on
// one goroutine per peer instead of readiness multiplexing.

package bridge

import (
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/momentics/tcpudp-bridge/control"
	"github.com/momentics/tcpudp-bridge/forward"
	"github.com/momentics/tcpudp-bridge/pool"
)

// ThreadedForwarder accepts TCP connections and forwards each peer's bytes
// to the UDP target from a dedicated goroutine.
type ThreadedForwarder struct {
	ln   net.Listener
	sink forward.Sink
	log  zerolog.Logger
	bufs *pool.BytePool

	mu      sync.Mutex
	conns   map[net.Conn]struct{}
	closing bool
	wg      sync.WaitGroup
}

// NewThreadedForwarder opens the listener and the UDP sink. Tunables beyond
// the buffer size are ignored; the kernel schedules the blocking readers.
func NewThreadedForwarder(cfg Config) (*ThreadedForwarder, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	sink, err := forward.NewUDPSink(cfg.TargetHost, cfg.TargetPort)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.ListenPort))
	if err != nil {
		sink.Close()
		return nil, fmt.Errorf("tcp listen: %w", err)
	}
	return &ThreadedForwarder{
		ln:    ln,
		sink:  sink,
		log:   cfg.Logger,
		bufs:  pool.NewBytePool(cfg.BufferSize),
		conns: make(map[net.Conn]struct{}),
	}, nil
}

// Port reports the bound TCP listen port.
func (t *ThreadedForwarder) Port() int {
	return t.ln.Addr().(*net.TCPAddr).Port
}

// Serve accepts connections until Shutdown closes the listener.
func (t *ThreadedForwarder) Serve() {
	t.log.Info().
		Str("listen", t.ln.Addr().String()).
		Str("udp_target", t.sink.Target().String()).
		Msg("threaded forwarder running")

	for {
		conn, err := t.ln.Accept()
		if err != nil {
			t.mu.Lock()
			closing := t.closing
			t.mu.Unlock()
			if closing {
				return
			}
			t.log.Warn().Err(err).Msg("accept failed")
			control.AcceptErrors.Inc()
			continue
		}
		t.mu.Lock()
		if t.closing {
			t.mu.Unlock()
			conn.Close()
			return
		}
		t.conns[conn] = struct{}{}
		t.mu.Unlock()

		control.AcceptedTotal.Inc()
		control.ActiveConnections.Inc()
		t.wg.Add(1)
		go t.handle(conn)
	}
}

func (t *ThreadedForwarder) handle(conn net.Conn) {
	peer := conn.RemoteAddr().String()
	t.log.Info().Str("peer", peer).Msg("client connected")

	defer func() {
		conn.Close()
		t.mu.Lock()
		delete(t.conns, conn)
		t.mu.Unlock()
		control.ActiveConnections.Dec()
		t.wg.Done()
	}()

	buf := t.bufs.GetBuffer()
	defer t.bufs.PutBuffer(buf)

	for {
		n, err := conn.Read(buf)
		if n > 0 {
			if ferr := t.sink.Forward(buf[:n]); ferr != nil {
				t.log.Warn().Err(ferr).Str("peer", peer).Msg("forward failed")
				control.ForwardErrors.Inc()
			} else {
				control.ForwardedTotal.Inc()
				control.ForwardedBytes.Add(float64(n))
			}
		}
		if err != nil {
			t.log.Info().Str("peer", peer).Msg("client disconnected")
			return
		}
	}
}

// Shutdown stops accepting, closes every tracked connection, waits for the
// handlers to drain, and releases the sink.
func (t *ThreadedForwarder) Shutdown() {
	t.mu.Lock()
	t.closing = true
	for conn := range t.conns {
		conn.Close()
	}
	t.mu.Unlock()
	t.ln.Close()
	t.wg.Wait()
	t.sink.Close()
	t.log.Info().Msg("threaded forwarder stopped")
}
