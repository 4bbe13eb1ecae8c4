// Package export writes validation results and code catalogs to
// delimited-text sinks.
//
// Two sinks exist. ReportExporter writes the findings of a validation
// run as a tabular CSV report whose column set is a compatibility
// surface for downstream spreadsheet consumers. CatalogExporter writes
// the valid code catalog either as a flat snapshot or as a dropdown
// grid: one column per field type with the allowed codes listed
// underneath, padded so every column has the same height.
package export
