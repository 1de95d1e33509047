package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/l1jgo/blastsim/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	log, err := newLogger(config.LoggingConfig{Level: "debug", Format: "json", File: path}, true)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Info("hello")
	_ = log.Sync()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(raw), `"msg":"hello"`) {
		t.Errorf("log file missing entry: %s", raw)
	}
}

func TestNewLoggerBadLevelFallsBack(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "loud", Format: "console"}, false)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected info level fallback")
	}
}
