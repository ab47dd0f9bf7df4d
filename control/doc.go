// Package control
// Author: momentics <momentics@gmail.com>
//
// Operator-facing runtime control for the bridge processes: the console
// shutdown channel polled by the event loop, and the Prometheus metrics
// surface with its optional HTTP listener.
package control
