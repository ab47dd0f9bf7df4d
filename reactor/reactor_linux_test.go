//go:build linux

package reactor_test

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/momentics/tcpudp-bridge/reactor"
)

func mustPipe(t *testing.T) (rfd, wfd int) {
	t.Helper()
	var p [2]int
	if err := unix.Pipe2(p[:], unix.O_NONBLOCK|unix.O_CLOEXEC); err != nil {
		t.Fatalf("pipe2: %v", err)
	}
	t.Cleanup(func() {
		unix.Close(p[0])
		unix.Close(p[1])
	})
	return p[0], p[1]
}

func TestWaitReportsReadableFd(t *testing.T) {
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	rfd, wfd := mustPipe(t)
	if err := r.Register(rfd); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := unix.Write(wfd, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := make([]reactor.Event, 8)
	n, err := r.Wait(events, 1000)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if n != 1 || events[0].Fd != rfd {
		t.Fatalf("want 1 event for fd %d, got n=%d events=%v", rfd, n, events[:n])
	}
}

func TestWaitTimesOutWithNoEvents(t *testing.T) {
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	rfd, _ := mustPipe(t)
	if err := r.Register(rfd); err != nil {
		t.Fatalf("register: %v", err)
	}

	events := make([]reactor.Event, 8)
	n, err := r.Wait(events, 10)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if n != 0 {
		t.Fatalf("want 0 events on idle pipe, got %d", n)
	}
}

func TestUnregisteredFdIsNotDispatched(t *testing.T) {
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	rfd, wfd := mustPipe(t)
	if err := r.Register(rfd); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.Unregister(rfd); err != nil {
		t.Fatalf("unregister: %v", err)
	}

	if _, err := unix.Write(wfd, []byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := make([]reactor.Event, 8)
	n, err := r.Wait(events, 20)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if n != 0 {
		t.Fatalf("unregistered fd dispatched: %v", events[:n])
	}
}

func TestLevelTriggeredReadinessRefires(t *testing.T) {
	r, err := reactor.New()
	if err != nil {
		t.Fatalf("new reactor: %v", err)
	}
	defer r.Close()

	rfd, wfd := mustPipe(t)
	if err := r.Register(rfd); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := unix.Write(wfd, []byte("xy")); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := make([]reactor.Event, 8)
	for i := 0; i < 2; i++ {
		n, err := r.Wait(events, 1000)
		if err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
		if n != 1 {
			t.Fatalf("wait %d: want readiness to re-fire while data pending, got %d events", i, n)
		}
	}
}
