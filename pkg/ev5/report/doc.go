// Package report defines the result types produced by EV5 validation.
//
// A validation run over one data tape yields a Result: the number of
// field occurrences that were actually checked plus an ordered list of
// Findings. A Finding addresses one invalid observation precisely by
// block, block-local line number, schema column, and field name. Results
// are plain values with no reference back to the parsed document, so
// they can be handed to any sink (CSV report, SQLite history, console)
// after the run completes.
package report
