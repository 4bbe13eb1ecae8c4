// Package schema defines the field-position schema for EV5 data tapes.
//
// A schema maps a block name to the fields expected in that block's
// records and the 1-based column position of each field. It is loaded
// once per run from a JSON or YAML file and read-only thereafter.
// Column positions need not be unique or contiguous; a schema may
// declare only the columns it cares about.
package schema
