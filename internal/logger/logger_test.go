package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := New("production", &buf)
	log.Debug("hidden")
	log.Info("user registered", "provider", "local")

	line := strings.TrimSpace(buf.String())
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug output should be filtered in production, got %q", line)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", line, err)
	}
	if entry["msg"] != "user registered" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["service"] != "secrets" {
		t.Errorf("expected service attribute, got %v", entry["service"])
	}
}

func TestNew_DevelopmentIsVerbose(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := New("development", &buf)
	log.Debug("rendering page", "page", "home")

	out := buf.String()
	if !strings.Contains(out, "rendering page") || !strings.Contains(out, "page=home") {
		t.Errorf("expected debug text output, got %q", out)
	}
	if !strings.Contains(out, "source=") {
		t.Errorf("expected source location in development output, got %q", out)
	}
}
