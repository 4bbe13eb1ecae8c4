package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"yaml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOutputFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseOutputFormat() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOutputFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseOutputFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON)

	data := map[string]int{"findings": 3}
	if err := f.FormatTo(&buf, data); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded["findings"] != 3 {
		t.Errorf("findings = %d, want 3", decoded["findings"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON output should be indented")
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatText).FormatTo(&buf, "3 findings"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "3 findings\n" {
		t.Errorf("FormatTo() = %q, want %q", buf.String(), "3 findings\n")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("catalog.url", "not a URL")
	if !strings.Contains(err.Error(), "catalog.url") {
		t.Errorf("Error() = %q, want field name included", err.Error())
	}

	bare := NewConfigError("", "everything is wrong")
	if strings.Contains(bare.Error(), " in ") {
		t.Errorf("Error() = %q, should not name a field", bare.Error())
	}
}

func TestPreconditionError(t *testing.T) {
	err := NewPreconditionError("code catalog", "no field types with codes")
	if !strings.Contains(err.Error(), "code catalog") {
		t.Errorf("Error() = %q, want resource name included", err.Error())
	}

	// Precondition failures keep their identity through command
	// wrapping, so callers can distinguish "nothing to validate
	// against" from a run that failed mid-flight.
	wrapped := NewCommandError("validate", err)
	var precondErr *PreconditionError
	if !errors.As(wrapped, &precondErr) {
		t.Fatalf("errors.As() failed to reach the PreconditionError in %v", wrapped)
	}
	if precondErr.Resource != "code catalog" {
		t.Errorf("Resource = %q, want code catalog", precondErr.Resource)
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewCommandError("validate", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should reach the cause")
	}
	if !strings.Contains(err.Error(), "validate") {
		t.Errorf("Error() = %q, want command name included", err.Error())
	}
}
