// File: forward/sink.go
// Author: momentics <momentics@gmail.com>

// Package forward emits datagrams to the bridge's fixed UDP destination.
// Delivery is fire-and-forget: the sink never retries and never fragments
// beyond what the transport itself does.
package forward

import (
	"fmt"
	"net"
)

// Sink forwards one byte sequence as one outbound datagram.
type Sink interface {
	// Forward sends buf as a single datagram to the fixed destination.
	Forward(buf []byte) error

	// Target reports the resolved destination address.
	Target() net.Addr

	// Close releases the underlying socket.
	Close() error
}

// UDPSink is a Sink over a connected UDP socket. The destination is
// resolved once at construction and immutable afterwards, so the sink is
// safe to share read-only across connection handlers.
type UDPSink struct {
	conn *net.UDPConn
	addr *net.UDPAddr
}

// NewUDPSink resolves host:port once and opens the outbound UDP socket.
func NewUDPSink(host string, port int) (*UDPSink, error) {
	addr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, fmt.Sprintf("%d", port)))
	if err != nil {
		return nil, fmt.Errorf("resolve udp target: %w", err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("udp socket: %w", err)
	}
	return &UDPSink{conn: conn, addr: addr}, nil
}

// Forward sends buf as one datagram. A short write cannot occur on a
// datagram socket; any error is reported to the caller for logging only.
func (s *UDPSink) Forward(buf []byte) error {
	if _, err := s.conn.Write(buf); err != nil {
		return fmt.Errorf("udp forward: %w", err)
	}
	return nil
}

// Target returns the resolved destination address.
func (s *UDPSink) Target() net.Addr { return s.addr }

// Close releases the outbound socket.
func (s *UDPSink) Close() error { return s.conn.Close() }
