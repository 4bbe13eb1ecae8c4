package codes

import (
	"sort"
	"strings"
)

// CatalogRecord is one entry of the valid code catalog.
type CatalogRecord struct {
	// CodeName is the field type this code belongs to.
	CodeName string `json:"codeName"`

	// Code is the allowed value.
	Code string `json:"code"`

	// Description is informational only; the validator never reads it.
	Description string `json:"description"`
}

// Index maps a normalized field type name to its set of allowed codes.
// Both field types and codes are trimmed and upper-cased at insert time,
// so membership tests are case-insensitive by construction.
type Index map[string]map[string]struct{}

// BuildIndex normalizes catalog records into an Index. Records whose
// code name or code is empty after trimming are silently dropped;
// duplicates collapse through set semantics. An empty input yields an
// empty index, which the caller must treat as "no catalog available".
func BuildIndex(records []CatalogRecord) Index {
	idx := make(Index)
	for _, rec := range records {
		name := strings.ToUpper(strings.TrimSpace(rec.CodeName))
		code := strings.ToUpper(strings.TrimSpace(rec.Code))
		if name == "" || code == "" {
			continue
		}
		set, ok := idx[name]
		if !ok {
			set = make(map[string]struct{})
			idx[name] = set
		}
		set[code] = struct{}{}
	}
	return idx
}

// Has reports whether the index knows the given field type. The name is
// normalized before lookup.
func (idx Index) Has(fieldType string) bool {
	_, ok := idx[normalize(fieldType)]
	return ok
}

// Contains reports whether code is an allowed value for fieldType. Both
// arguments are normalized before lookup. An unknown field type yields
// false.
func (idx Index) Contains(fieldType, code string) bool {
	set, ok := idx[normalize(fieldType)]
	if !ok {
		return false
	}
	_, ok = set[normalize(code)]
	return ok
}

// Allowed returns the sorted allowed codes for a field type, or nil if
// the field type is unknown.
func (idx Index) Allowed(fieldType string) []string {
	set, ok := idx[normalize(fieldType)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// FieldTypes returns all known field types, sorted.
func (idx Index) FieldTypes() []string {
	out := make([]string, 0, len(idx))
	for name := range idx {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
