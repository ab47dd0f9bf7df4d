// File: pool/bytepool.go
// Author: momentics <momentics@gmail.com>

// Package pool provides the fixed-size read buffers shared by the bridge
// read loops and the UDP log server.
package pool

import "sync"

// DefaultDatagramSize is the buffer size used by the datagram read loops:
// large enough for any payload the bridge itself emits.
const DefaultDatagramSize = 4096

// BytePool hands out []byte buffers of a single fixed size.
type BytePool struct {
	size int
	p    sync.Pool
}

// NewBytePool creates a pool of size-byte buffers.
func NewBytePool(size int) *BytePool {
	bp := &BytePool{size: size}
	bp.p.New = func() any {
		return make([]byte, size)
	}
	return bp
}

// Size returns the capacity of buffers handed out by this pool.
func (b *BytePool) Size() int { return b.size }

// GetBuffer returns a buffer of exactly Size() bytes from the pool.
func (b *BytePool) GetBuffer() []byte {
	return b.p.Get().([]byte)
}

// PutBuffer returns a buffer to the pool. Buffers of the wrong capacity are
// dropped so a caller cannot poison the pool with a resliced buffer.
func (b *BytePool) PutBuffer(buf []byte) {
	if cap(buf) != b.size {
		return
	}
	b.p.Put(buf[:b.size])
}
