// File: bridge/config.go
// Author: momentics <momentics@gmail.com>

package bridge

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

// Defaults for the event-loop tunables. The poll timeout only bounds how
// long a quiet loop waits before re-checking the control channel; it is not
// a protocol constant.
const (
	DefaultBufferSize    = 4096
	DefaultPollTimeoutMs = 100
	DefaultMaxEvents     = 64
	DefaultBacklog       = 10
)

// ShutdownPoller is the control channel consulted once per loop iteration.
type ShutdownPoller interface {
	ShutdownRequested() bool
}

// Config configures a bridge. TargetHost/TargetPort name the fixed UDP
// destination, resolved once at startup. ListenPort 0 binds an ephemeral
// port, reported by Port().
type Config struct {
	ListenPort int
	TargetHost string
	TargetPort int

	BufferSize    int // per-read buffer, also the max datagram payload
	PollTimeoutMs int
	MaxEvents     int
	Backlog       int

	Control ShutdownPoller // optional; nil disables console polling
	Logger  zerolog.Logger
}

func (c *Config) applyDefaults() {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultBufferSize
	}
	if c.PollTimeoutMs <= 0 {
		c.PollTimeoutMs = DefaultPollTimeoutMs
	}
	if c.MaxEvents <= 0 {
		c.MaxEvents = DefaultMaxEvents
	}
	if c.Backlog <= 0 {
		c.Backlog = DefaultBacklog
	}
}

func (c *Config) validate() error {
	if c.TargetHost == "" {
		return fmt.Errorf("bridge: target host is required")
	}
	if c.TargetPort <= 0 || c.TargetPort > 65535 {
		return fmt.Errorf("bridge: invalid target port %d", c.TargetPort)
	}
	if c.ListenPort < 0 || c.ListenPort > 65535 {
		return fmt.Errorf("bridge: invalid listen port %d", c.ListenPort)
	}
	return nil
}

// Tunables is the INI-overridable subset of the configuration.
type Tunables struct {
	BufferSize    int    `ini:"buffer_size"`
	PollTimeoutMs int    `ini:"poll_timeout_ms"`
	MaxEvents     int    `ini:"max_events"`
	Backlog       int    `ini:"backlog"`
	MetricsAddr   string `ini:"metrics_addr"`
	LogLevel      string `ini:"log_level"`
}

// FileConfig is the on-disk configuration layout.
type FileConfig struct {
	Bridge Tunables `ini:"bridge"`
}

// LoadINI reads tunables from an INI file. The BRIDGE_LOG_LEVEL environment
// variable overrides the file's log level when set.
func LoadINI(path string) (*FileConfig, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	var fc FileConfig
	if err := f.MapTo(&fc); err != nil {
		return nil, fmt.Errorf("map config %s: %w", path, err)
	}
	if lvl := os.Getenv("BRIDGE_LOG_LEVEL"); lvl != "" {
		fc.Bridge.LogLevel = lvl
	}
	return &fc, nil
}

// Apply copies the file tunables that were actually set onto cfg.
func (fc *FileConfig) Apply(cfg *Config) {
	if fc.Bridge.BufferSize > 0 {
		cfg.BufferSize = fc.Bridge.BufferSize
	}
	if fc.Bridge.PollTimeoutMs > 0 {
		cfg.PollTimeoutMs = fc.Bridge.PollTimeoutMs
	}
	if fc.Bridge.MaxEvents > 0 {
		cfg.MaxEvents = fc.Bridge.MaxEvents
	}
	if fc.Bridge.Backlog > 0 {
		cfg.Backlog = fc.Bridge.Backlog
	}
}
