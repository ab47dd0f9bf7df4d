//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// linuxReactor is an epoll-based readiness reactor. Registrations are
// level-triggered: an unread condition re-fires on every Wait, so a handler
// that stops short of draining a descriptor is retried on the next
// iteration instead of silently starving.
type linuxReactor struct {
	epfd int
	raw  []unix.EpollEvent
}

// New constructs the platform reactor for Linux.
func New() (Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("epoll create: %w", err)
	}
	return &linuxReactor{epfd: epfd}, nil
}

// Register adds fd to the epoll readiness set with read interest.
func (r *linuxReactor) Register(fd int) error {
	ev := unix.EpollEvent{
		Events: unix.EPOLLIN,
		Fd:     int32(fd),
	}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add fd %d: %w", fd, err)
	}
	return nil
}

// Unregister removes fd from the epoll readiness set.
func (r *linuxReactor) Unregister(fd int) error {
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return fmt.Errorf("epoll ctl del fd %d: %w", fd, err)
	}
	return nil
}

// Wait fills events with ready descriptors, blocking up to timeoutMs.
func (r *linuxReactor) Wait(events []Event, timeoutMs int) (int, error) {
	if cap(r.raw) < len(events) {
		r.raw = make([]unix.EpollEvent, len(events))
	}
	raw := r.raw[:len(events)]

	n, err := unix.EpollWait(r.epfd, raw, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, fmt.Errorf("epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		events[i] = Event{Fd: int(raw[i].Fd)}
	}
	return n, nil
}

// Close releases the epoll instance.
func (r *linuxReactor) Close() error {
	return unix.Close(r.epfd)
}
