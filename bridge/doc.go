// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package bridge forwards TCP payload bytes to a fixed UDP destination.
//
// The primary implementation is a single-threaded event loop: one goroutine
// multiplexes the listening socket and every accepted connection through a
// readiness reactor, so no peer can stall service of another and no locks
// guard connection state. Bytes read from a connection are emitted verbatim
// as datagrams, one datagram per read, order preserved per connection.
//
// ThreadedForwarder is the architecturally separate goroutine-per-connection
// variant of the same forwarding contract, trading event-loop bookkeeping
// for per-connection scheduling overhead.
package bridge
