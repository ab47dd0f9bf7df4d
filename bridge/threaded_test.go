package bridge_test

import (
	"bytes"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/tcpudp-bridge/bridge"
)

func startThreaded(t *testing.T, targetPort int) *bridge.ThreadedForwarder {
	t.Helper()
	tf, err := bridge.NewThreadedForwarder(bridge.Config{
		TargetHost: "127.0.0.1",
		TargetPort: targetPort,
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new threaded forwarder: %v", err)
	}
	go tf.Serve()
	t.Cleanup(tf.Shutdown)
	return tf
}

func TestThreadedForwardsVerbatim(t *testing.T) {
	_, port, ch := udpCollector(t)
	tf := startThreaded(t, port)

	conn, err := net.DialTimeout("tcp", fmt.Sprintf("127.0.0.1:%d", tf.Port()), 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("threaded")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := recvDatagram(t, ch); !bytes.Equal(got, []byte("threaded")) {
		t.Fatalf("datagram = %q, want %q", got, "threaded")
	}
}

func TestThreadedServesClientsConcurrently(t *testing.T) {
	_, port, ch := udpCollector(t)
	tf := startThreaded(t, port)

	// An idle peer must not stall the other's forwarding.
	idle, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", tf.Port()))
	if err != nil {
		t.Fatalf("dial idle: %v", err)
	}
	defer idle.Close()

	busy, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", tf.Port()))
	if err != nil {
		t.Fatalf("dial busy: %v", err)
	}
	defer busy.Close()

	if _, err := busy.Write([]byte("payload")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := recvDatagram(t, ch); !bytes.Equal(got, []byte("payload")) {
		t.Fatalf("datagram = %q, want %q", got, "payload")
	}
}
