package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantBlocks map[string][]string
		wantOrder  []string
	}{
		{
			name: "single block",
			input: `-- TEST DATA --
X|C|Y
X|A|Y
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"X|C|Y", "X|A|Y"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name: "multiple blocks in order",
			input: `-- VEHICLE --
V|1
-- OCCUPANT --
O|2
O|3
`,
			wantBlocks: map[string][]string{
				"VEHICLE":  {"V|1"},
				"OCCUPANT": {"O|2", "O|3"},
			},
			wantOrder: []string{"VEHICLE", "OCCUPANT"},
		},
		{
			name: "comments and blank lines are skipped",
			input: `-- TEST DATA --
# this is a comment
X|C|Y

# another comment
X|A|Y
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"X|C|Y", "X|A|Y"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name: "content before the first header is discarded",
			input: `stray|line
-- TEST DATA --
X|A|Y
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"X|A|Y"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name: "repeated header resets the block, position kept",
			input: `-- VEHICLE --
old|1
-- OCCUPANT --
O|1
-- VEHICLE --
new|2
`,
			wantBlocks: map[string][]string{
				"VEHICLE":  {"new|2"},
				"OCCUPANT": {"O|1"},
			},
			wantOrder: []string{"VEHICLE", "OCCUPANT"},
		},
		{
			name: "single dashes do not open a block",
			input: `- NOTES -
-- TEST DATA --
- NOTES -
X|A|Y
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"- NOTES -", "X|A|Y"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name: "lowercase header is not a header",
			input: `-- test data --
X|A|Y
`,
			wantBlocks: map[string][]string{},
			wantOrder:  nil,
		},
		{
			name: "long dash runs and padding are tolerated",
			input: `----  TEST DATA  ----
X|A|Y
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"X|A|Y"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name: "header with trailing content is record data",
			input: `-- TEST DATA --
-- TEST DATA -- extra
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"-- TEST DATA -- extra"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name: "record lines are trimmed but otherwise untouched",
			input: `-- TEST DATA --
  X| c |Y
`,
			wantBlocks: map[string][]string{
				"TEST DATA": {"X| c |Y"},
			},
			wantOrder: []string{"TEST DATA"},
		},
		{
			name:       "empty input",
			input:      "",
			wantBlocks: map[string][]string{},
			wantOrder:  nil,
		},
		{
			name: "header-only block has zero lines",
			input: `-- TEST DATA --
`,
			wantBlocks: map[string][]string{
				"TEST DATA": nil,
			},
			wantOrder: []string{"TEST DATA"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewParser().ParseBytes([]byte(tt.input))
			if err != nil {
				t.Fatalf("ParseBytes() error = %v", err)
			}

			if !reflect.DeepEqual(doc.Names(), tt.wantOrder) {
				t.Errorf("Names() = %v, want %v", doc.Names(), tt.wantOrder)
			}
			for name, wantLines := range tt.wantBlocks {
				if !doc.Has(name) {
					t.Errorf("Has(%q) = false, want true", name)
					continue
				}
				if got := doc.Lines(name); !reflect.DeepEqual(got, wantLines) {
					t.Errorf("Lines(%q) = %v, want %v", name, got, wantLines)
				}
			}
			if doc.BlockCount() != len(tt.wantOrder) {
				t.Errorf("BlockCount() = %d, want %d", doc.BlockCount(), len(tt.wantOrder))
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tape.ev5")
	content := "-- TEST DATA --\nX|A|Y\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write tape: %v", err)
	}

	doc, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := doc.Lines("TEST DATA"); !reflect.DeepEqual(got, []string{"X|A|Y"}) {
		t.Errorf("Lines() = %v, want [X|A|Y]", got)
	}
}

func TestParseFileTooLarge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tape.ev5")
	if err := os.WriteFile(path, []byte("-- TEST DATA --\nX|A|Y\n"), 0o644); err != nil {
		t.Fatalf("failed to write tape: %v", err)
	}

	_, err := NewParser().WithMaxFileSize(4).Parse(path)
	if err == nil {
		t.Fatal("Parse() expected size limit error, got nil")
	}
	if !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("Parse() error = %v, want size limit error", err)
	}
}

func TestParseBytesTooLarge(t *testing.T) {
	_, err := NewParser().WithMaxFileSize(4).ParseBytes([]byte("-- TEST DATA --\n"))
	if err == nil {
		t.Fatal("ParseBytes() expected size limit error, got nil")
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := NewParser().Parse(filepath.Join(t.TempDir(), "nope.ev5"))
	if err == nil {
		t.Fatal("Parse() expected error for missing file, got nil")
	}
}

func TestLineCount(t *testing.T) {
	doc, err := NewParser().ParseBytes([]byte("-- A B --\nx|1\nx|2\n-- C D --\ny|1\n"))
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if doc.LineCount() != 3 {
		t.Errorf("LineCount() = %d, want 3", doc.LineCount())
	}
}
