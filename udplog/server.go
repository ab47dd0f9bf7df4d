// File: udplog/server.go
// Author: momentics <momentics@gmail.com>

// Package udplog implements the UDP log-append server: every received
// datagram is written verbatim to a log file. Receiving and file writing
// run on separate goroutines joined by a queue, so a slow disk never backs
// up into the socket buffer.
package udplog

import (
	"fmt"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/rs/zerolog"

	"github.com/momentics/tcpudp-bridge/pool"
)

// readDeadline bounds each receive so the loop observes the running flag.
const readDeadline = time.Second

// Server receives datagrams on a bound UDP port and appends them to a file.
type Server struct {
	pc   *net.UDPConn
	file *os.File
	log  zerolog.Logger
	bufs *pool.BytePool

	mu   sync.Mutex
	cond *sync.Cond
	q    *queue.Queue

	running atomic.Bool
	writer  sync.WaitGroup
}

// New binds the UDP port (0 for ephemeral) and opens the log file in append
// mode, creating it if needed.
func New(port int, path string, log zerolog.Logger) (*Server, error) {
	pc, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("udp listen: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		pc.Close()
		return nil, fmt.Errorf("open log file: %w", err)
	}
	s := &Server{
		pc:   pc,
		file: file,
		log:  log,
		bufs: pool.NewBytePool(pool.DefaultDatagramSize),
		q:    queue.New(),
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Port reports the bound UDP port.
func (s *Server) Port() int {
	return s.pc.LocalAddr().(*net.UDPAddr).Port
}

// Run receives datagrams until Shutdown. It blocks the calling goroutine.
func (s *Server) Run() {
	s.running.Store(true)
	s.writer.Add(1)
	go s.drain()

	s.log.Info().Int("udp_port", s.Port()).Str("file", s.file.Name()).Msg("udp log server running")

	for s.running.Load() {
		buf := s.bufs.GetBuffer()
		s.pc.SetReadDeadline(time.Now().Add(readDeadline))
		n, _, err := s.pc.ReadFromUDP(buf)
		if err != nil {
			s.bufs.PutBuffer(buf)
			if nerr, ok := err.(net.Error); ok && nerr.Timeout() {
				continue
			}
			if !s.running.Load() {
				break
			}
			s.log.Warn().Err(err).Msg("recv failed")
			continue
		}

		s.mu.Lock()
		s.q.Add(buf[:n])
		s.cond.Signal()
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
	s.writer.Wait()

	s.file.Close()
	s.pc.Close()
	s.log.Info().Msg("udp log server stopped")
}

// drain appends queued datagrams to the log file, flushing each one.
func (s *Server) drain() {
	defer s.writer.Done()
	for {
		s.mu.Lock()
		for s.q.Length() == 0 && s.running.Load() {
			s.cond.Wait()
		}
		if s.q.Length() == 0 {
			s.mu.Unlock()
			return
		}
		msg := s.q.Remove().([]byte)
		s.mu.Unlock()

		// os.File writes are unbuffered, so each datagram hits the file
		// immediately.
		if _, err := s.file.Write(msg); err != nil {
			s.log.Error().Err(err).Msg("log append failed")
		}
		s.bufs.PutBuffer(msg)
	}
}

// Shutdown requests a stop; Run returns once queued datagrams are flushed.
func (s *Server) Shutdown() {
	s.running.Store(false)
	s.mu.Lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}
