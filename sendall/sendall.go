// File: sendall/sendall.go
// Author: momentics <momentics@gmail.com>

// Package sendall sends a complete buffer over a connected stream socket,
// retrying partial writes. Used by the test client; the event-loop bridge
// core does not depend on it.
package sendall

import (
	"fmt"
	"io"
)

// SendAll writes all of buf to w, retrying on partial writes. Any write
// error is permanent: the caller cannot know how much of the buffer reached
// the peer. A zero-length buffer trivially succeeds.
func SendAll(w io.Writer, buf []byte) error {
	sent := 0
	for sent < len(buf) {
		n, err := w.Write(buf[sent:])
		if err != nil {
			return fmt.Errorf("sendall: after %d/%d bytes: %w", sent, len(buf), err)
		}
		if n == 0 {
			return fmt.Errorf("sendall: zero-byte write after %d/%d bytes", sent, len(buf))
		}
		sent += n
	}
	return nil
}
