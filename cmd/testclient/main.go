// File: cmd/testclient/main.go
// Author: momentics <momentics@gmail.com>
//
// Test-message client: formats a timestamped message tagged with the
// sending source location and ships it once over TCP or UDP. TCP sends go
// through sendall so a partial write never truncates the message.

package main

import (
	"fmt"
	"net"
	"os"
	"runtime"
	"time"

	"github.com/momentics/tcpudp-bridge/sendall"
)

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s tcp <host> <port> <message>\n  %s udp <host> <port> <message>\n",
		os.Args[0], os.Args[0])
}

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 5 {
		usage()
		return 1
	}
	mode, host, port, message := os.Args[1], os.Args[2], os.Args[3], os.Args[4]
	if mode != "tcp" && mode != "udp" {
		fmt.Fprintf(os.Stderr, "invalid mode %q (must be 'tcp' or 'udp')\n", mode)
		return 1
	}

	_, file, line, _ := runtime.Caller(0)
	payload := fmt.Sprintf("[%s][%s][%s][%d]\n",
		time.Now().Format("2006-01-02 15:04:05"), message, file, line)

	conn, err := net.DialTimeout(mode, net.JoinHostPort(host, port), 5*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s dial: %v\n", mode, err)
		return 1
	}
	defer conn.Close()

	if mode == "tcp" {
		err = sendall.SendAll(conn, []byte(payload))
	} else {
		// One shot, one datagram.
		_, err = conn.Write([]byte(payload))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "send: %v\n", err)
		return 1
	}

	fmt.Printf("%s message sent to %s:%s\n", mode, host, port)
	return 0
}
