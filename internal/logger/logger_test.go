package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("endpoint called", "url", "https://api.thecatapi.com/v1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected debug to be filtered, got %d lines: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "endpoint called" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["url"] != "https://api.thecatapi.com/v1" {
		t.Fatalf("unexpected url field %v", entry["url"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key in %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]string{
		"debug":   "debug",
		"warning": "warn",
		"bogus":   "info",
	} {
		if got := parseLevel(name).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestEnsureReturnsNop(t *testing.T) {
	if _, ok := Ensure(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil input")
	}
	if _, ok := FromZap(nil).(NopLogger); !ok {
		t.Fatalf("expected NopLogger for nil zap logger")
	}
}
