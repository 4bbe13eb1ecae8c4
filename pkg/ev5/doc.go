// Package ev5 provides parsing and validation for EV5 automotive test
// data tapes.
//
// An EV5 file is a semi-structured, line-oriented flat file: repeated
// dash headers open named blocks, and each block holds pipe-delimited
// record lines. Validation maps each record's columns to the positions
// a schema declares for that block and checks every extracted value
// against the valid code catalog.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - parser: block segmentation of raw tape lines
//   - validator: schema-driven field and code checking
//   - report: finding and result value types
//
// # Basic Usage
//
// Parse and validate a tape:
//
//	sch, err := schema.Load("schema.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	idx := codes.BuildIndex(records)
//
//	result, err := ev5.ParseAndValidate("crash_test.ev5", sch, idx, validator.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("checked %d fields, %d invalid\n", result.CheckedFields, len(result.Findings))
//
// The parser and validator can also be driven separately when the caller
// wants to inspect the parsed document first:
//
//	doc, err := parser.NewParser().Parse("crash_test.ev5")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result := validator.New(validator.DefaultOptions()).Validate(doc, sch, idx)
//
// # Validation semantics
//
// For each record line and each schema field, the value at the field's
// column is trimmed and upper-cased. Out-of-range columns and empty
// values are skipped without a finding. Each remaining occurrence is
// counted as checked and passes through two sequential stages: the
// field type must be known to the catalog (FIELD finding otherwise,
// when enabled), then the value must be in the field's allowed set
// (CODE finding otherwise, when enabled). A FIELD finding suppresses
// the code check for that occurrence.
package ev5
