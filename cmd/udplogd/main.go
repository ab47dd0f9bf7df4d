// File: cmd/udplogd/main.go
// Author: momentics <momentics@gmail.com>
//
// UDP log-append server: every datagram received on the port is written
// verbatim to the log file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/momentics/tcpudp-bridge/control"
	"github.com/momentics/tcpudp-bridge/logging"
	"github.com/momentics/tcpudp-bridge/udplog"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <udp_port> <log_file>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	logLevel := flag.String("log-level", "info", "log level (trace..error)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		usage()
		return 1
	}
	port, err := strconv.Atoi(args[0])
	if err != nil || port <= 0 || port > 65535 {
		fmt.Fprintf(os.Stderr, "invalid port %q\n", args[0])
		usage()
		return 1
	}

	log := logging.Setup(*logLevel)
	s, err := udplog.New(port, args[1], logging.WithComponent(log, "udplog"))
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
				s.Shutdown()
				return
			case <-time.After(100 * time.Millisecond):
				if console.ShutdownRequested() {
					s.Shutdown()
					return
				}
			}
		}
	}()

	log.Info().Msg("type 'quit' and press Enter for graceful shutdown")
	s.Run()
	return 0
}
