// File: control/console.go
// Author: momentics <momentics@gmail.com>

package control

import (
	"bufio"
	"io"
	"strings"
	"sync/atomic"
)

// DefaultQuitWord is the command that requests graceful shutdown.
const DefaultQuitWord = "quit"

// Console watches an operator input stream for a shutdown command. Reading
// happens on a dedicated goroutine; ShutdownRequested is a lock-free flag
// read, so polling it from the event loop costs O(1) regardless of how many
// connections are registered and never touches the loop's readiness wait.
type Console struct {
	quitWord  string
	requested atomic.Bool
}

// NewConsole starts watching r for lines beginning with quitWord. All other
// input is ignored. An empty quitWord selects DefaultQuitWord. EOF on r
// stops the watcher without requesting shutdown.
func NewConsole(r io.Reader, quitWord string) *Console {
	if quitWord == "" {
		quitWord = DefaultQuitWord
	}
	c := &Console{quitWord: quitWord}
	go c.watch(r)
	return c
}

func (c *Console) watch(r io.Reader) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, c.quitWord) {
			c.requested.Store(true)
			return
		}
	}
}

// ShutdownRequested reports, without blocking, whether the operator has
// submitted the quit command.
func (c *Console) ShutdownRequested() bool {
	return c.requested.Load()
}
