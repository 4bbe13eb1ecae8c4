package cli

import "fmt"

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("config error: %s", e.Message)
	}
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// PreconditionError reports a missing validation prerequisite: an empty
// code catalog, a schema with nothing in it, or a data directory
// without tapes. These abort the run before any tape is touched, so the
// absence of findings can never be mistaken for a clean result.
type PreconditionError struct {
	Resource string
	Message  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Resource, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// NewPreconditionError creates a new PreconditionError.
func NewPreconditionError(resource, message string) *PreconditionError {
	return &PreconditionError{
		Resource: resource,
		Message:  message,
	}
}
