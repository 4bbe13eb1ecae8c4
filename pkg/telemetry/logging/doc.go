// Package logging configures structured logging on top of log/slog.
//
// Setup parses the configured level and format, builds the matching
// slog handler, and installs it as the process default so components
// can take child loggers with slog.Default().With("component", ...).
// Three formats are supported: json for machine consumption, text for
// logfmt-style output, and console for human-readable CLI output.
package logging
