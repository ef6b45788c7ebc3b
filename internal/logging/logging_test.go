package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "goodbuddi.log")
	logger, err := New(path, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("plan_committed", zap.String("date_key", "2026-10-15"), zap.Int("events", 3))
	logger.Debug("hidden")
	Sync(logger)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(raw)
	if !strings.Contains(out, `"msg":"plan_committed"`) || !strings.Contains(out, `"date_key":"2026-10-15"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug entry leaked at info level: %s", out)
	}
}

func TestNewDebugLogsDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	logger, err := New(path, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Debug("tick_seen")
	Sync(logger)

	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "tick_seen") {
		t.Fatalf("expected debug entry, got %s", raw)
	}
}
