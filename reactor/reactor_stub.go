//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub for platforms without a supported multiplexing backend.

package reactor

import "errors"

// New reports that no readiness-multiplexing backend exists on this platform.
func New() (Reactor, error) {
	return nil, errors.New("reactor: no readiness backend on this platform")
}
