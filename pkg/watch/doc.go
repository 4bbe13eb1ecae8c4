// Package watch observes a data directory for tape files and triggers
// validation when one is created or modified.
//
// Events are debounced per path so a tape still being copied into the
// directory is validated once, after its writes settle, instead of once
// per write.
package watch
