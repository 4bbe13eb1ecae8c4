package ev5

import (
	"github.com/arundhati-c/datatapevalidation/pkg/codes"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/parser"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
	"github.com/arundhati-c/datatapevalidation/pkg/ev5/validator"
	"github.com/arundhati-c/datatapevalidation/pkg/schema"
)

// ParseAndValidate is a convenience function that parses the tape at
// path and validates it in one call.
func ParseAndValidate(path string, sch schema.Schema, idx codes.Index, opts validator.Options) (report.Result, error) {
	p := parser.NewParser()
	doc, err := p.Parse(path)
	if err != nil {
		return report.Result{}, err
	}

	v := validator.New(opts)
	return v.Validate(doc, sch, idx), nil
}

// ParseAndValidateBytes parses and validates tape content already in
// memory.
func ParseAndValidateBytes(data []byte, sch schema.Schema, idx codes.Index, opts validator.Options) (report.Result, error) {
	p := parser.NewParser()
	doc, err := p.ParseBytes(data)
	if err != nil {
		return report.Result{}, err
	}

	v := validator.New(opts)
	return v.Validate(doc, sch, idx), nil
}

// Parse parses a tape without validation. Use this to inspect the
// parsed document before validating.
func Parse(path string) (*parser.Document, error) {
	return parser.NewParser().Parse(path)
}

// Validate validates an already-parsed document.
func Validate(doc *parser.Document, sch schema.Schema, idx codes.Index, opts validator.Options) report.Result {
	return validator.New(opts).Validate(doc, sch, idx)
}
