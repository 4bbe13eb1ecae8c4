// Package cli provides shared helpers for datatape commands: typed
// command/config errors and output formatting for text and JSON modes.
package cli
