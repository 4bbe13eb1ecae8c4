package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/arundhati-c/datatapevalidation/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"WARN", slog.LevelWarn, false},
		{"loud", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseLevel() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]LogFormat{
		"json":    FormatJSON,
		"text":    FormatText,
		"console": FormatConsole,
		"JSON":    FormatJSON,
	} {
		got, err := ParseFormat(input)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) expected error, got nil")
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("tape validated", "tape", "a.ev5", "findings", 2)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "tape validated" {
		t.Errorf("msg = %v, want tape validated", entry["msg"])
	}
	if entry["tape"] != "a.ev5" {
		t.Errorf("tape = %v, want a.ev5", entry["tape"])
	}
}

func TestNewLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("should not appear")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Error("info line leaked past warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn line missing")
	}
}

func TestNewConsoleDropsTime(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hello")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("console output should not carry a timestamp: %s", buf.String())
	}
}

func TestNewInvalidConfig(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud", Format: "json"}, nil); err == nil {
		t.Error("New() expected error for bad level, got nil")
	}
	if _, err := New(config.LoggingConfig{Level: "info", Format: "xml"}, nil); err == nil {
		t.Error("New() expected error for bad format, got nil")
	}
}
