package report

// Kind categorizes a validation finding.
type Kind string

const (
	// KindField means the field type itself is not present in the valid
	// code catalog. Emitted only when field type validation is enabled.
	KindField Kind = "FIELD"

	// KindCode means the field type is known but the observed value is
	// not in its allowed code set.
	KindCode Kind = "CODE"
)

// StatusInvalid is the status recorded on every finding. Only invalid
// entries are reported, so the column is constant; it exists because
// downstream consumers of the report file key on it.
const StatusInvalid = "INVALID"

// Finding is one invalid observation in a data tape.
type Finding struct {
	// Block is the normalized name of the block the line belongs to.
	Block string `json:"block"`

	// Line is the 1-based line number within the block's own record
	// sequence, not the line's position in the source file.
	Line int `json:"line"`

	// Column is the 1-based schema column position of the field.
	Column int `json:"column"`

	// Field is the schema-declared field name.
	Field string `json:"field"`

	// Value is the observed value, trimmed and upper-cased.
	Value string `json:"value"`

	// Kind is the violation category (FIELD or CODE).
	Kind Kind `json:"invalid_type"`

	// ExpectedCodes describes what would have been valid: the sorted,
	// comma-joined allowed set for CODE findings, or a fixed note for
	// FIELD findings.
	ExpectedCodes string `json:"expected_codes"`

	// Status is always StatusInvalid.
	Status string `json:"status"`
}

// Result is the complete outcome of validating one data tape.
type Result struct {
	// CheckedFields counts field occurrences that were extracted and
	// checked. Every finding corresponds to exactly one checked
	// occurrence, so CheckedFields >= len(Findings).
	CheckedFields int `json:"checked_fields"`

	// Findings are ordered by block, then line, then schema field order.
	Findings []Finding `json:"findings"`
}

// Invalid reports whether the run produced any findings.
func (r Result) Invalid() bool {
	return len(r.Findings) > 0
}
