// File: cmd/tcp2udp-threads/main.go
// Author: momentics <momentics@gmail.com>
//
// Goroutine-per-connection TCP to UDP bridge: same forwarding contract as
// tcp2udp, blocking reads instead of an event loop.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/momentics/tcpudp-bridge/bridge"
	"github.com/momentics/tcpudp-bridge/control"
	"github.com/momentics/tcpudp-bridge/logging"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <tcp_listen_port> <udp_target_host> <udp_target_port>\n", os.Args[0])
	flag.PrintDefaults()
}

func parsePort(s string) (int, error) {
	p, err := strconv.Atoi(s)
	if err != nil || p <= 0 || p > 65535 {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	return p, nil
}

func main() {
	os.Exit(run())
}

func run() int {
	var (
		bufferSize = flag.Int("buffer", bridge.DefaultBufferSize, "per-read buffer size (max datagram payload)")
		logLevel   = flag.String("log-level", "info", "log level (trace..error)")
	)
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		return 1
	}
	listenPort, err := parsePort(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return 1
	}
	targetPort, err := parsePort(args[2])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		return 1
	}

	log := logging.Setup(*logLevel)
	tf, err := bridge.NewThreadedForwarder(bridge.Config{
		ListenPort: listenPort,
		TargetHost: args[1],
		TargetPort: targetPort,
		BufferSize: *bufferSize,
		Logger:     logging.WithComponent(log, "threaded"),
	})
	if err != nil {
		log.Error().Err(err).Msg("setup failed")
		return 1
	}

	console := control.NewConsole(os.Stdin, "")
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for {
			select {
			case <-sigCh:
				tf.Shutdown()
				return
			case <-time.After(100 * time.Millisecond):
				if console.ShutdownRequested() {
					tf.Shutdown()
					return
				}
			}
		}
	}()

	log.Info().Msg("type 'quit' and press Enter for graceful shutdown")
	tf.Serve()
	return 0
}
