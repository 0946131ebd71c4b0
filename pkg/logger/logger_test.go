package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestInitAndLevelString(t *testing.T) {
	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	orig := out
	out = log.New(&buf, "", 0)
	defer func() { out = orig }()

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	got := buf.String()
	if strings.Contains(got, "debug-msg") || strings.Contains(got, "info-msg") {
		t.Fatalf("debug/info messages should be suppressed at warn level: %q", got)
	}
	if !strings.Contains(got, "warn-msg") {
		t.Fatalf("warn message missing: %q", got)
	}
	if !strings.Contains(got, "error-msg") {
		t.Fatalf("error message missing: %q", got)
	}

	// back to info so other tests keep their output
	Init("info")
}
