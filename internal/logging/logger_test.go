package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriterFormats(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, slog.LevelInfo, "json").Info("store initialized", "sensors", 6)
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "store initialized" {
		t.Fatalf("msg = %v", entry["msg"])
	}

	buf.Reset()
	NewWithWriter(&buf, slog.LevelInfo, "text").Info("store initialized")
	if !strings.Contains(buf.String(), "msg=\"store initialized\"") {
		t.Fatalf("unexpected text output %q", buf.String())
	}
}

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, slog.LevelWarn, "json")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}
