//go:build linux
// +build linux

// File: bridge/listener.go
// Author: momentics <momentics@gmail.com>
//
// Listening socket setup and the accept-drain path.

package bridge

import (
	"fmt"
	"net"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/momentics/tcpudp-bridge/control"
)

// listenTCP opens a non-blocking IPv4 listening socket on port (0 for
// ephemeral) and returns the descriptor and the bound port.
func listenTCP(port, backlog int) (int, int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, 0, fmt.Errorf("tcp socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}
	if err := unix.Bind(fd, &unix.SockaddrInet4{Port: port}); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("bind port %d: %w", port, err)
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("listen: %w", err)
	}
	sa, err := unix.Getsockname(fd)
	if err != nil {
		unix.Close(fd)
		return -1, 0, fmt.Errorf("getsockname: %w", err)
	}
	bound := 0
	if in4, ok := sa.(*unix.SockaddrInet4); ok {
		bound = in4.Port
	}
	return fd, bound, nil
}

// acceptAll drains every pending connection off the listening socket. Each
// accepted peer enters non-blocking mode via SOCK_NONBLOCK and is registered
// with the reactor; a peer that fails registration is closed immediately and
// never enters the connection table. A single failed accept is logged and
// skipped without disturbing the rest of the batch.
func (b *Bridge) acceptAll() {
	for {
		nfd, sa, err := unix.Accept4(b.listenFd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return
			}
			if err == unix.EINTR || err == unix.ECONNABORTED {
				continue
			}
			// Likely resource exhaustion (EMFILE and friends). The pending
			// connection stays queued; level-triggered readiness re-fires it
			// on the next iteration.
			b.log.Warn().Err(err).Msg("accept failed")
			control.AcceptErrors.Inc()
			return
		}

		c := &conn{fd: nfd, peer: sockaddrString(sa)}
		if err := b.r.Register(nfd); err != nil {
			b.log.Warn().Err(err).Str("peer", c.peer).Msg("register failed, dropping connection")
			unix.Close(nfd)
			control.AcceptErrors.Inc()
			continue
		}
		b.conns[nfd] = c
		control.AcceptedTotal.Inc()
		control.ActiveConnections.Inc()
		b.log.Info().Str("peer", c.peer).Int("fd", nfd).Msg("client connected")
	}
}

func sockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	case *unix.SockaddrInet6:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	default:
		return "unknown"
	}
}
