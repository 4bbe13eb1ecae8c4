// Package storage persists validation run history.
//
// Each validation run over one data tape is recorded with a generated
// run ID, the tape label, the checked-field count, and every finding
// the run produced. Two backends implement the Storage interface: a
// SQLite backend for durable history and an in-memory backend for
// tests.
package storage
