// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for the bridge processes, plus the optional
// metrics/health HTTP listener.

package control

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	ActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{Name: "tcpudp_active_connections", Help: "Currently tracked TCP connections"})
	AcceptedTotal     = promauto.NewCounter(prometheus.CounterOpts{Name: "tcpudp_accepted_total", Help: "TCP connections accepted"})
	AcceptErrors      = promauto.NewCounter(prometheus.CounterOpts{Name: "tcpudp_accept_errors_total", Help: "Failed accept attempts"})
	ForwardedTotal    = promauto.NewCounter(prometheus.CounterOpts{Name: "tcpudp_forwarded_datagrams_total", Help: "Datagrams forwarded to the UDP target"})
	ForwardedBytes    = promauto.NewCounter(prometheus.CounterOpts{Name: "tcpudp_forwarded_bytes_total", Help: "Payload bytes forwarded to the UDP target"})
	ForwardErrors     = promauto.NewCounter(prometheus.CounterOpts{Name: "tcpudp_forward_errors_total", Help: "UDP forward failures (non-fatal)"})
	ReadErrors        = promauto.NewCounter(prometheus.CounterOpts{Name: "tcpudp_read_errors_total", Help: "Connection read errors causing teardown"})
)

// StartMetricsServer serves Prometheus metrics and a liveness probe on addr.
// It blocks, so callers run it on its own goroutine; it never touches
// bridge connection state.
func StartMetricsServer(addr string, log zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
	}
}
