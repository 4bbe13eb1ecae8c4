// Package config loads and validates the datatape configuration.
//
// Configuration is read from a YAML file, defaults are applied, and the
// result is validated before use. Environment variables with the
// DATATAPE_ prefix override file values. A process-wide singleton is
// provided for the CLI; library consumers should pass Config values
// explicitly.
package config
