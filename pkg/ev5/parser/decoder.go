package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LineDecoder converts the raw bytes of one line into a string. It lets
// the caller choose how undecodable bytes are handled without the parser
// hard-coding a policy.
type LineDecoder interface {
	// DecodeLine decodes one line. A non-nil error means the line should
	// be dropped; the parser continues with the next line.
	DecodeLine(raw []byte) (string, error)
}

// ReplacingDecoder substitutes U+FFFD for invalid UTF-8 sequences and
// keeps the line. It never returns an error. This is the default: a
// mangled byte in one value should not cost the rest of the line.
type ReplacingDecoder struct{}

// DecodeLine implements LineDecoder.
func (ReplacingDecoder) DecodeLine(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), nil
}

// StrictDecoder rejects lines containing invalid UTF-8. The parser drops
// the line and reports it through the decode error handler, if one is
// configured.
type StrictDecoder struct{}

// DecodeLine implements LineDecoder.
func (StrictDecoder) DecodeLine(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("line contains invalid UTF-8")
	}
	return string(raw), nil
}
