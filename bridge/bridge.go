//go:build linux
// +build linux

// File: bridge/bridge.go
// Author: momentics <momentics@gmail.com>
//
// Single-threaded event-loop core: reactor wait, dispatch, teardown.

package bridge

import (
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"

	"github.com/momentics/tcpudp-bridge/control"
	"github.com/momentics/tcpudp-bridge/forward"
	"github.com/momentics/tcpudp-bridge/pool"
	"github.com/momentics/tcpudp-bridge/reactor"
)

// conn is one tracked TCP peer. Owned exclusively by the bridge's connection
// table from accept until teardown; no other component holds a reference.
type conn struct {
	fd   int
	peer string
}

// Bridge runs the event loop. All fields except running are confined to the
// loop goroutine; running is an atomic so Shutdown and a console watcher may
// flip it from outside.
type Bridge struct {
	cfg  Config
	log  zerolog.Logger
	r    reactor.Reactor
	sink forward.Sink
	bufs *pool.BytePool

	listenFd int
	port     int
	conns    map[int]*conn
	events   []reactor.Event

	running atomic.Bool
}

// New resolves the forwarding target, creates the reactor, and opens the
// non-blocking listening socket. Any error here is a setup failure the
// caller should treat as fatal.
func New(cfg Config) (*Bridge, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sink, err := forward.NewUDPSink(cfg.TargetHost, cfg.TargetPort)
	if err != nil {
		return nil, err
	}

	r, err := reactor.New()
	if err != nil {
		sink.Close()
		return nil, err
	}

	listenFd, port, err := listenTCP(cfg.ListenPort, cfg.Backlog)
	if err != nil {
		r.Close()
		sink.Close()
		return nil, err
	}
	if err := r.Register(listenFd); err != nil {
		unix.Close(listenFd)
		r.Close()
		sink.Close()
		return nil, err
	}

	b := &Bridge{
		cfg:      cfg,
		log:      cfg.Logger,
		r:        r,
		sink:     sink,
		bufs:     pool.NewBytePool(cfg.BufferSize),
		listenFd: listenFd,
		port:     port,
		conns:    make(map[int]*conn),
		events:   make([]reactor.Event, cfg.MaxEvents),
	}
	b.running.Store(true)
	return b, nil
}

// Port reports the bound TCP listen port.
func (b *Bridge) Port() int { return b.port }

// Shutdown requests a graceful stop. Safe from any goroutine; the loop
// observes it at the next iteration boundary.
func (b *Bridge) Shutdown() { b.running.Store(false) }

// Run blocks the calling goroutine until shutdown is requested or the
// readiness wait fails unrecoverably. On return all tracked connections,
// the listener, the reactor, and the sink have been released.
func (b *Bridge) Run() error {
	defer b.teardown()

	b.log.Info().
		Int("tcp_port", b.port).
		Str("udp_target", b.sink.Target().String()).
		Msg("bridge running")

	for b.running.Load() {
		if b.cfg.Control != nil && b.cfg.Control.ShutdownRequested() {
			b.log.Info().Msg("shutdown requested")
			b.running.Store(false)
			break
		}

		n, err := b.r.Wait(b.events, b.cfg.PollTimeoutMs)
		if err != nil {
			b.log.Error().Err(err).Msg("readiness wait failed")
			return err
		}

		for i := 0; i < n; i++ {
			fd := b.events[i].Fd
			if fd == b.listenFd {
				b.acceptAll()
				continue
			}
			c, ok := b.conns[fd]
			if !ok {
				// Torn down earlier in this same batch.
				continue
			}
			switch b.handleReadable(c) {
			case readOK:
			case readClosed:
				b.log.Info().Str("peer", c.peer).Msg("client disconnected")
				b.closeConn(c)
			case readFailed:
				control.ReadErrors.Inc()
				b.closeConn(c)
			}
		}
	}
	return nil
}

// closeConn deregisters first, then closes, so a reused descriptor number
// can never be dispatched against this dead connection.
func (b *Bridge) closeConn(c *conn) {
	if err := b.r.Unregister(c.fd); err != nil {
		b.log.Warn().Err(err).Str("peer", c.peer).Msg("deregister failed")
	}
	unix.Close(c.fd)
	delete(b.conns, c.fd)
	control.ActiveConnections.Dec()
}

func (b *Bridge) teardown() {
	for _, c := range b.conns {
		b.closeConn(c)
	}
	b.r.Unregister(b.listenFd)
	unix.Close(b.listenFd)
	b.r.Close()
	b.sink.Close()
	b.log.Info().Msg("bridge stopped")
}
