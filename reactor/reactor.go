// File: reactor/reactor.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral readiness reactor interface.

package reactor

// Event is one readiness notification produced by a Wait call. It is valid
// only until the next Wait on the same reactor.
type Event struct {
	Fd int // Ready file descriptor.
}

// Reactor multiplexes read readiness across registered file descriptors.
// Implementations are not safe for concurrent use; the bridge drives a
// reactor from exactly one goroutine.
type Reactor interface {
	// Register adds a file descriptor to the readiness set with read
	// interest.
	Register(fd int) error

	// Unregister removes a file descriptor from the readiness set. Callers
	// must unregister before closing the descriptor, or a reused descriptor
	// number could be dispatched against a dead connection.
	Unregister(fd int) error

	// Wait blocks up to timeoutMs milliseconds and fills events with ready
	// descriptors. Returns the number of events written. A wait interrupted
	// by signal delivery returns 0 events and a nil error; any other error
	// is unrecoverable for the calling loop.
	Wait(events []Event, timeoutMs int) (int, error)

	// Close releases the multiplexing instance. Registered descriptors are
	// not closed.
	Close() error
}
