package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// headerPattern matches a block header line: two or more dashes, a name
// of uppercase letters and spaces, two or more dashes, nothing else.
var headerPattern = regexp.MustCompile(`^-{2,}\s*([A-Z ]+)\s*-{2,}$`)

// commentMarker starts a comment line. Comment and empty lines are
// skipped entirely: they neither open nor close a block and do not count
// toward block-local line numbers.
const commentMarker = "#"

// Parser parses EV5 data tapes into Documents.
type Parser struct {
	maxFileSize   int64
	decoder       LineDecoder
	onDecodeError func(fileLine int, err error)
}

// NewParser creates a parser with default configuration: a 10MB file
// size limit and a ReplacingDecoder for malformed bytes.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024,
		decoder:     ReplacingDecoder{},
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithDecoder sets the line decoding strategy.
func (p *Parser) WithDecoder(d LineDecoder) *Parser {
	p.decoder = d
	return p
}

// WithDecodeErrorHandler registers a callback invoked for every line the
// decoder rejects. fileLine is the 1-based position in the source file.
func (p *Parser) WithDecodeErrorHandler(fn func(fileLine int, err error)) *Parser {
	p.onDecodeError = fn
	return p
}

// Parse parses the EV5 file at the given path.
func (p *Parser) Parse(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access %q: %w", path, err)
	}
	if info.Size() > p.maxFileSize {
		return nil, fmt.Errorf("file %q is %d bytes, exceeds maximum %d", path, info.Size(), p.maxFileSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	return p.ParseReader(f)
}

// ParseBytes parses an EV5 data tape from a byte slice. This is useful
// for testing or for documents already resident in memory.
func (p *Parser) ParseBytes(data []byte) (*Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, fmt.Errorf("data is %d bytes, exceeds maximum %d", len(data), p.maxFileSize)
	}
	return p.ParseReader(bytes.NewReader(data))
}

// ParseReader parses an EV5 data tape from a reader. The whole input is
// consumed before the Document is returned.
func (p *Parser) ParseReader(r io.Reader) (*Document, error) {
	doc := NewDocument()
	current := ""

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	fileLine := 0
	for scanner.Scan() {
		fileLine++

		line, err := p.decoder.DecodeLine(scanner.Bytes())
		if err != nil {
			if p.onDecodeError != nil {
				p.onDecodeError(fileLine, err)
			}
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}

		if m := headerPattern.FindStringSubmatch(line); m != nil {
			current = strings.ToUpper(strings.TrimSpace(m[1]))
			doc.open(current)
			continue
		}

		// Content before the first header has no block to belong to.
		if current == "" {
			continue
		}
		doc.appendLine(current, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return doc, nil
}
