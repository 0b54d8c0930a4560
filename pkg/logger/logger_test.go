package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"questrelay/pkg/config"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithWriter(config.LoggingConfig{Format: "json", Level: "info"}, &buf)
	if err != nil {
		t.Fatalf("newWithWriter error: %v", err)
	}

	log.Info("relay started", "channel", "announcements")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "relay started" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if entry["channel"] != "announcements" {
		t.Fatalf("channel = %v", entry["channel"])
	}
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithWriter(config.LoggingConfig{Format: "text", Level: "info"}, &buf)
	if err != nil {
		t.Fatalf("newWithWriter error: %v", err)
	}

	log.Info("relay started")
	if !strings.Contains(buf.String(), "relay started") {
		t.Fatalf("text output = %q", buf.String())
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := newWithWriter(config.LoggingConfig{Format: "json", Level: "warn"}, &buf)
	if err != nil {
		t.Fatalf("newWithWriter error: %v", err)
	}

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info line written despite warn level: %q", buf.String())
	}

	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatalf("warn line missing: %q", buf.String())
	}
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	if _, err := newWithWriter(config.LoggingConfig{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if _, err := newWithWriter(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unsupported level")
	}
}
