package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestReplacingDecoder(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{"valid ascii", []byte("X|A|Y"), "X|A|Y"},
		{"valid utf8", []byte("X|é|Y"), "X|é|Y"},
		{"invalid byte replaced", []byte{'X', '|', 0xff, '|', 'Y'}, "X|�|Y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReplacingDecoder{}.DecodeLine(tt.input)
			if err != nil {
				t.Fatalf("DecodeLine() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStrictDecoder(t *testing.T) {
	if _, err := (StrictDecoder{}).DecodeLine([]byte("X|A|Y")); err != nil {
		t.Fatalf("DecodeLine() error on valid input = %v", err)
	}
	if _, err := (StrictDecoder{}).DecodeLine([]byte{0xff, 0xfe}); err == nil {
		t.Fatal("DecodeLine() expected error for invalid UTF-8, got nil")
	}
}

func TestParserStrictDecoderDropsLine(t *testing.T) {
	input := []byte("-- TEST DATA --\n")
	input = append(input, 'X', '|', 0xff, '\n')
	input = append(input, []byte("X|A|Y\n")...)

	var dropped []int
	doc, err := NewParser().
		WithDecoder(StrictDecoder{}).
		WithDecodeErrorHandler(func(fileLine int, err error) {
			dropped = append(dropped, fileLine)
		}).
		ParseBytes(input)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if got := doc.Lines("TEST DATA"); !reflect.DeepEqual(got, []string{"X|A|Y"}) {
		t.Errorf("Lines() = %v, want [X|A|Y]", got)
	}
	if !reflect.DeepEqual(dropped, []int{2}) {
		t.Errorf("dropped lines = %v, want [2]", dropped)
	}
}

func TestParserReplacingDecoderKeepsLine(t *testing.T) {
	input := []byte("-- TEST DATA --\n")
	input = append(input, 'X', '|', 0xff, '|', 'Y', '\n')

	doc, err := NewParser().ParseBytes(input)
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	lines := doc.Lines("TEST DATA")
	if len(lines) != 1 {
		t.Fatalf("Lines() = %v, want one line", lines)
	}
	if !strings.Contains(lines[0], "�") {
		t.Errorf("line %q should carry the replacement rune", lines[0])
	}
}
