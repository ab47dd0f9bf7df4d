package logging_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/momentics/tcpudp-bridge/logging"
)

func TestSetupParsesLevel(t *testing.T) {
	log := logging.Setup("warn")
	if log.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("level = %v, want warn", log.GetLevel())
	}
}

func TestSetupFallsBackToInfo(t *testing.T) {
	log := logging.Setup("chatty")
	if log.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %v, want info fallback", log.GetLevel())
	}
}
