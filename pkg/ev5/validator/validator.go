package validator

import (
	"strings"

	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/parser"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
	"github.com/arundhati-c/datatapevalidation/pkg/schema"
)

// Delimiter separates columns within a record line. No quoting or
// escaping is supported; a delimiter inside a value is indistinguishable
// from a field boundary.
const Delimiter = "|"

// unrecognizedFieldType is the ExpectedCodes text on FIELD findings.
const unrecognizedFieldType = "Field type not recognized"

// Options holds the validation policy for one run. The toggles are
// independent: field type validation may run without code validation
// and vice versa.
type Options struct {
	// ValidateFieldTypes flags schema fields whose type is absent from
	// the code index.
	ValidateFieldTypes bool

	// ValidateCodes flags values outside their field's allowed code set.
	ValidateCodes bool
}

// DefaultOptions returns the standard policy: codes are checked, field
// types are trusted.
func DefaultOptions() Options {
	return Options{
		ValidateFieldTypes: false,
		ValidateCodes:      true,
	}
}

// Validator validates parsed documents under a fixed policy. It holds no
// per-run state and is safe for concurrent use.
type Validator struct {
	opts Options
}

// New creates a validator with the given options.
func New(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Validate walks every block of the document that the schema declares
// and checks each schema field of each record line. Blocks absent from
// the schema are skipped wholesale; they are simply not subject to
// validation. The result's findings are ordered by block (document
// order), then line, then field name.
func (v *Validator) Validate(doc *parser.Document, sch schema.Schema, idx codes.Index) report.Result {
	var res report.Result

	for _, block := range doc.Names() {
		fields, ok := sch.Block(block)
		if !ok {
			continue
		}
		fieldNames := fields.Fields()

		for i, row := range doc.Lines(block) {
			lineNum := i + 1
			parts := strings.Split(row, Delimiter)

			for _, field := range fieldNames {
				col := fields[field]
				v.checkField(&res, idx, block, lineNum, col, field, parts)
			}
		}
	}

	return res
}

// checkField runs the two-stage check for one field occurrence. The
// stages are sequential by contract: a FIELD finding ends the occurrence
// before the code check is attempted.
func (v *Validator) checkField(res *report.Result, idx codes.Index, block string, line, col int, field string, parts []string) {
	// Schema positions are 1-based. Positions past the end of a short
	// row are tolerated: the field is skipped, not flagged.
	i := col - 1
	if i >= len(parts) {
		return
	}

	value := strings.ToUpper(strings.TrimSpace(parts[i]))
	if value == "" {
		// Absence is not itself a violation.
		return
	}

	res.CheckedFields++
	fieldType := strings.ToUpper(strings.TrimSpace(field))

	if v.opts.ValidateFieldTypes && !idx.Has(fieldType) {
		res.Findings = append(res.Findings, report.Finding{
			Block:         block,
			Line:          line,
			Column:        col,
			Field:         field,
			Value:         value,
			Kind:          report.KindField,
			ExpectedCodes: unrecognizedFieldType,
			Status:        report.StatusInvalid,
		})
		return
	}

	// A field type the index does not know and that field type
	// validation did not flag is silently assumed acceptable.
	if v.opts.ValidateCodes && idx.Has(fieldType) && !idx.Contains(fieldType, value) {
		res.Findings = append(res.Findings, report.Finding{
			Block:         block,
			Line:          line,
			Column:        col,
			Field:         field,
			Value:         value,
			Kind:          report.KindCode,
			ExpectedCodes: strings.Join(idx.Allowed(fieldType), ", "),
			Status:        report.StatusInvalid,
		})
	}
}
