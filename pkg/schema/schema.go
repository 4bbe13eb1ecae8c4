package schema

import (
	"fmt"
	"sort"
	"strings"
)

// BlockSchema maps field names to 1-based column positions within one
// block's records.
type BlockSchema map[string]int

// Schema maps block names to their field layouts. Names are normalized
// (trimmed, upper-cased) when the schema is loaded.
type Schema map[string]BlockSchema

// Block returns the field layout for a block name, normalizing the name
// first. The second return reports whether the block is declared.
func (s Schema) Block(name string) (BlockSchema, bool) {
	b, ok := s[strings.ToUpper(strings.TrimSpace(name))]
	return b, ok
}

// Fields returns the block's field names sorted alphabetically. The
// validator iterates fields in this order so findings are stable across
// runs.
func (b BlockSchema) Fields() []string {
	out := make([]string, 0, len(b))
	for name := range b {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Validate checks schema integrity: every column position must be a
// positive integer and no two fields within a block may collide after
// name normalization.
func Validate(s Schema) error {
	for block, fields := range s {
		if len(fields) == 0 {
			return fmt.Errorf("block %q declares no fields", block)
		}
		for field, pos := range fields {
			if pos < 1 {
				return fmt.Errorf("block %q field %q: column position %d must be positive", block, field, pos)
			}
		}
	}
	return nil
}

// normalize rebuilds a schema with trimmed, upper-cased block and field
// names. It errors if two field names collapse to the same normalized
// name, since the validator could not tell their positions apart.
func normalize(raw Schema) (Schema, error) {
	out := make(Schema, len(raw))
	for block, fields := range raw {
		blockName := strings.ToUpper(strings.TrimSpace(block))
		normFields := make(BlockSchema, len(fields))
		for field, pos := range fields {
			fieldName := strings.ToUpper(strings.TrimSpace(field))
			if _, dup := normFields[fieldName]; dup {
				return nil, fmt.Errorf("block %q: duplicate field name %q after normalization", blockName, fieldName)
			}
			normFields[fieldName] = pos
		}
		out[blockName] = normFields
	}
	return out, nil
}
