package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/arundhati-c/datatapevalidation/pkg/ev5/report"
)

// MemoryStorage implements Storage in memory. It is intended for tests
// and for runs where history persistence is disabled.
type MemoryStorage struct {
	mu   sync.RWMutex
	runs map[string]*RunRecord
}

// NewMemoryStorage creates an empty in-memory history backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		runs: make(map[string]*RunRecord),
	}
}

// RecordRun stores a copy of the run.
func (s *MemoryStorage) RecordRun(ctx context.Context, run *RunRecord) error {
	if run.ID == "" {
		return NewStorageError("memory", "record", fmt.Errorf("run ID is empty"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.runs[run.ID]; exists {
		return NewStorageError("memory", "record", fmt.Errorf("run %q already recorded", run.ID))
	}

	stored := *run
	stored.FindingCount = len(run.Findings)
	stored.Findings = append([]report.Finding(nil), run.Findings...)
	s.runs[run.ID] = &stored
	return nil
}

// ListRuns returns up to limit runs, most recent first, without
// findings attached.
func (s *MemoryStorage) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		listed := *run
		listed.Findings = nil
		runs = append(runs, &listed)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].RunTime.After(runs[j].RunTime)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// RunFindings returns the findings of one run.
func (s *MemoryStorage) RunFindings(ctx context.Context, runID string) ([]report.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[runID]
	if !ok {
		return nil, NewStorageError("memory", "findings", fmt.Errorf("run %q not found", runID))
	}
	return append([]report.Finding(nil), run.Findings...), nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}
