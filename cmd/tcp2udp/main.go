//go:build linux
// +build linux

// File: cmd/tcp2udp/main.go
// Author: momentics <momentics@gmail.com>
//
// Event-loop TCP to UDP bridge. Accepts TCP connections on the listen port
// and forwards every received byte sequence verbatim as UDP datagrams to
// the target. A 'quit' line on stdin shuts the bridge down gracefully.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

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
		bufferSize  = flag.Int("buffer", bridge.DefaultBufferSize, "per-read buffer size (max datagram payload)")
		pollTimeout = flag.Int("poll-timeout", bridge.DefaultPollTimeoutMs, "readiness wait timeout in milliseconds")
		maxEvents   = flag.Int("max-events", bridge.DefaultMaxEvents, "max readiness events per wait")
		metricsAddr = flag.String("metrics", "", "metrics/health listen address (empty disables)")
		logLevel    = flag.String("log-level", "info", "log level (trace..error)")
		configPath  = flag.String("config", "", "optional INI file overriding tunables")
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

	cfg := bridge.Config{
		ListenPort:    listenPort,
		TargetHost:    args[1],
		TargetPort:    targetPort,
		BufferSize:    *bufferSize,
		PollTimeoutMs: *pollTimeout,
		MaxEvents:     *maxEvents,
	}
	if *configPath != "" {
		fc, err := bridge.LoadINI(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fc.Apply(&cfg)
		if fc.Bridge.LogLevel != "" {
			*logLevel = fc.Bridge.LogLevel
		}
		if fc.Bridge.MetricsAddr != "" {
			*metricsAddr = fc.Bridge.MetricsAddr
		}
	}

	log := logging.Setup(*logLevel)
	cfg.Logger = logging.WithComponent(log, "bridge")
	cfg.Control = control.NewConsole(os.Stdin, "")

	b, err := bridge.New(cfg)
	if err != nil {
		log.Error().Err(err).Msg("setup failed")
		return 1
	}

	if *metricsAddr != "" {
		go control.StartMetricsServer(*metricsAddr, log)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		b.Shutdown()
	}()

	log.Info().Msg("type 'quit' and press Enter for graceful shutdown")
	if err := b.Run(); err != nil {
		return 1
	}
	return 0
}
