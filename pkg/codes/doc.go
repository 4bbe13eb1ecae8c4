// Package codes manages the valid code catalog used by EV5 validation.
//
// The catalog is an ordered list of (code name, code, description)
// records sourced from the NHTSA ncodes API. BuildIndex normalizes the
// records into an Index: a case-insensitive lookup from field type to
// its allowed code set. The Index is built once per run and read-only
// afterwards, so it is safe to share across validation runs.
//
// Client fetches the catalog over HTTP; Refresher re-fetches it on a
// cron schedule for long-running watch mode.
package codes
