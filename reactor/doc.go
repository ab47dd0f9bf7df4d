// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness-multiplexing primitive behind the
// single-threaded bridge event loop: register descriptors for read interest,
// wait for readiness with a bounded timeout, deregister on teardown.
// Linux is backed by epoll(7) in level-triggered mode; other platforms get
// a stub constructor that reports the facility as unavailable.
package reactor
