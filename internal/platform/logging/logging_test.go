package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"studylog/internal/platform/logging"
)

func TestNewHonoursLevel(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New("info", buf)
	logger.Debug("hidden")
	logger.Info("session logged", "id", "s-1")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line must be filtered at info level: %s", out)
	}
	if !strings.Contains(out, "session logged") || !strings.Contains(out, "id=s-1") {
		t.Fatalf("expected info line with key/value, got %s", out)
	}
}

func TestNewFallsBackToWarn(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	logger := logging.New("nonsense", buf)
	logger.Info("quiet")
	logger.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Fatalf("expected warn level fallback, got %s", buf.String())
	}
}
