package parser

// Document is a parsed EV5 data tape: an ordered mapping from block name
// to the block's record lines in file order. Block iteration order is
// the order in which headers were first seen, which keeps downstream
// reports deterministic.
type Document struct {
	names  []string
	blocks map[string][]string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		blocks: make(map[string][]string),
	}
}

// open starts (or restarts) a block. A repeated header for the same name
// discards the lines collected so far: the last header wins. The block
// keeps its original position in iteration order.
func (d *Document) open(name string) {
	if _, ok := d.blocks[name]; !ok {
		d.names = append(d.names, name)
	}
	d.blocks[name] = nil
}

// appendLine adds a record line to an open block.
func (d *Document) appendLine(name, line string) {
	d.blocks[name] = append(d.blocks[name], line)
}

// Names returns block names in first-seen header order.
func (d *Document) Names() []string {
	return d.names
}

// Lines returns the record lines of a block, or nil if the block does
// not exist.
func (d *Document) Lines(name string) []string {
	return d.blocks[name]
}

// Has reports whether the document contains a block with the given name.
func (d *Document) Has(name string) bool {
	_, ok := d.blocks[name]
	return ok
}

// BlockCount returns the number of blocks in the document.
func (d *Document) BlockCount() int {
	return len(d.names)
}

// LineCount returns the total number of record lines across all blocks.
func (d *Document) LineCount() int {
	n := 0
	for _, lines := range d.blocks {
		n += len(lines)
	}
	return n
}
