//go:build linux
// +build linux

// File: bridge/conn.go
// Author: momentics <momentics@gmail.com>
//
// Per-connection read-and-forward handler.

package bridge

import (
	"golang.org/x/sys/unix"

	"github.com/momentics/tcpudp-bridge/control"
)

type readStatus int

const (
	readOK     readStatus = iota // drained, connection stays registered
	readClosed                   // peer performed an orderly close
	readFailed                   // unrecoverable read error
)

// handleReadable drains all currently available bytes from c, forwarding
// each successful read verbatim as one datagram. A forward failure is
// logged and does not tear down the TCP connection: datagram delivery is
// best-effort and its loss must not cascade into the stream.
func (b *Bridge) handleReadable(c *conn) readStatus {
	buf := b.bufs.GetBuffer()
	defer b.bufs.PutBuffer(buf)

	for {
		n, err := unix.Read(c.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return readOK
			}
			if err == unix.EINTR {
				continue
			}
			b.log.Warn().Err(err).Str("peer", c.peer).Msg("read failed")
			return readFailed
		}
		if n == 0 {
			return readClosed
		}

		if err := b.sink.Forward(buf[:n]); err != nil {
			b.log.Warn().Err(err).Str("peer", c.peer).Int("bytes", n).Msg("forward failed")
			control.ForwardErrors.Inc()
			continue
		}
		control.ForwardedTotal.Inc()
		control.ForwardedBytes.Add(float64(n))
	}
}
