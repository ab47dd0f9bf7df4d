package bridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/momentics/tcpudp-bridge/bridge"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.ini")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadINIOverridesTunables(t *testing.T) {
	path := writeConfig(t, `
[bridge]
buffer_size = 8192
poll_timeout_ms = 250
max_events = 16
log_level = debug
`)
	fc, err := bridge.LoadINI(path)
	if err != nil {
		t.Fatalf("load ini: %v", err)
	}

	cfg := bridge.Config{TargetHost: "127.0.0.1", TargetPort: 4000}
	fc.Apply(&cfg)
	if cfg.BufferSize != 8192 || cfg.PollTimeoutMs != 250 || cfg.MaxEvents != 16 {
		t.Fatalf("tunables not applied: %+v", cfg)
	}
	if cfg.Backlog != 0 {
		t.Fatalf("unset tunable modified: backlog=%d", cfg.Backlog)
	}
	if fc.Bridge.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", fc.Bridge.LogLevel)
	}
}

func TestLoadINIEnvOverridesLogLevel(t *testing.T) {
	path := writeConfig(t, "[bridge]\nlog_level = info\n")
	t.Setenv("BRIDGE_LOG_LEVEL", "trace")
	fc, err := bridge.LoadINI(path)
	if err != nil {
		t.Fatalf("load ini: %v", err)
	}
	if fc.Bridge.LogLevel != "trace" {
		t.Fatalf("log level = %q, want env override trace", fc.Bridge.LogLevel)
	}
}

func TestLoadINIMissingFile(t *testing.T) {
	if _, err := bridge.LoadINI(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Fatal("want error for missing config file")
	}
}
