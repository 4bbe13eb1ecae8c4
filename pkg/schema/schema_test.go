package schema

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "schema.json", `{
		"test data": {"speed": 2, "impact": 3}
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	block, ok := s.Block("TEST DATA")
	if !ok {
		t.Fatal("Block(TEST DATA) not found after normalization")
	}
	if block["SPEED"] != 2 || block["IMPACT"] != 3 {
		t.Errorf("block = %v, want SPEED:2 IMPACT:3", block)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "schema.yaml", `
test data:
  speed: 2
  impact: 3
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := s.Block("test data"); !ok {
		t.Error("Block lookup should normalize the queried name")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{"unsupported extension", "schema.txt", "{}", "unsupported schema file extension"},
		{"invalid json", "schema.json", "{nope", "failed to parse"},
		{"empty schema", "schema.json", "{}", "schema is empty"},
		{"non-positive position", "schema.json", `{"A": {"F": 0}}`, "must be positive"},
		{"block without fields", "schema.json", `{"A": {}}`, "declares no fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %v, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "schema.json")); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}

func TestFromRawDuplicateFields(t *testing.T) {
	_, err := FromRaw(Schema{
		"TEST DATA": {"speed": 2, "SPEED ": 3},
	})
	if err == nil {
		t.Fatal("FromRaw() expected duplicate field error, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate field") {
		t.Errorf("FromRaw() error = %v, want duplicate field error", err)
	}
}

func TestFieldsSorted(t *testing.T) {
	b := BlockSchema{"SPEED": 2, "IMPACT": 3, "ANGLE": 1}
	want := []string{"ANGLE", "IMPACT", "SPEED"}
	if got := b.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestBlockUnknown(t *testing.T) {
	s, err := FromRaw(Schema{"TEST DATA": {"SPEED": 2}})
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}
	if _, ok := s.Block("NOPE"); ok {
		t.Error("Block(NOPE) = ok, want missing")
	}
}
