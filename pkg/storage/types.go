package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
)

// RunRecord is one validation run as stored in history.
type RunRecord struct {
	// ID is a UUID assigned when the run is recorded.
	ID string `json:"id"`

	// Tape is the label of the validated input (file name or path).
	Tape string `json:"tape"`

	// RunTime is when the run was recorded.
	RunTime time.Time `json:"run_time"`

	// CheckedFields is the checked-field-occurrence count of the run.
	CheckedFields int `json:"checked_fields"`

	// FindingCount is the number of findings the run produced. It is
	// denormalized so listings do not need to load findings.
	FindingCount int `json:"finding_count"`

	// Findings holds the run's findings. ListRuns leaves this nil; use
	// RunFindings to load them.
	Findings []report.Finding `json:"findings,omitempty"`
}

// Storage is the run history backend contract.
type Storage interface {
	// RecordRun persists a run and its findings. The record's ID must
	// be set by the caller; storage does not generate identity.
	RecordRun(ctx context.Context, run *RunRecord) error

	// ListRuns returns up to limit runs, most recent first, without
	// findings attached.
	ListRuns(ctx context.Context, limit int) ([]*RunRecord, error)

	// RunFindings returns the findings of one run in recorded order.
	RunFindings(ctx context.Context, runID string) ([]report.Finding, error)

	// Close releases backend resources.
	Close() error
}

// StorageError represents an error from a storage backend.
type StorageError struct {
	Backend   string // backend type ("sqlite", "memory")
	Operation string // operation that failed ("record", "list", ...)
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}
