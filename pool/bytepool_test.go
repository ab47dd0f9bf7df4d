package pool_test

import (
	"testing"

	"github.com/momentics/tcpudp-bridge/pool"
)

func TestBufferHasRequestedSize(t *testing.T) {
	bp := pool.NewBytePool(4096)
	buf := bp.GetBuffer()
	if len(buf) != 4096 || cap(buf) != 4096 {
		t.Fatalf("want 4096-byte buffer, got len=%d cap=%d", len(buf), cap(buf))
	}
	bp.PutBuffer(buf)
}

func TestReturnedBufferIsFullLength(t *testing.T) {
	bp := pool.NewBytePool(128)
	buf := bp.GetBuffer()
	bp.PutBuffer(buf[:5]) // resliced but same backing array
	again := bp.GetBuffer()
	if len(again) != 128 {
		t.Fatalf("pool returned short buffer: len=%d", len(again))
	}
}

func TestForeignBufferIsDropped(t *testing.T) {
	bp := pool.NewBytePool(64)
	bp.PutBuffer(make([]byte, 16))
	if got := bp.GetBuffer(); len(got) != 64 {
		t.Fatalf("pool accepted wrong-size buffer: len=%d", len(got))
	}
}
