// Datatape validates EV5 automotive test data tapes against a
// field-position schema and the NHTSA valid code catalog.
//
// It parses each tape into named blocks, maps every record's
// pipe-delimited columns to schema-declared positions, checks extracted
// values against the catalog, and writes a CSV report of invalid
// fields.
//
// Usage:
//
//	# Validate all .ev5 files in the data directory
//	datatape validate
//
//	# Validate a single tape with an explicit schema
//	datatape validate --file crash_test.ev5 --schema schema.json
//
//	# Fetch the valid code catalog and write a snapshot CSV
//	datatape codes fetch
//
//	# Export the catalog as a dropdown grid for spreadsheets
//	datatape codes export --out valid_codes_grid.csv
//
//	# Watch the data directory and validate new tapes as they arrive
//	datatape watch
//
//	# Show version information
//	datatape version
package main

func main() {
	Execute()
}
