package codes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Refresher periodically re-fetches the valid code catalog on a cron
// schedule and rebuilds the index. It exists for watch mode, where the
// process outlives the catalog snapshot it started with.
type Refresher struct {
	client   *Client
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.RWMutex
	index   Index
	running bool

	// onRefresh, if set, is called with the new index after every
	// successful refresh.
	onRefresh func(Index)
}

// NewRefresher creates a refresher around the given client. The initial
// index is used until the first scheduled refresh succeeds.
func NewRefresher(client *Client, schedule string, initial Index) *Refresher {
	return &Refresher{
		client:   client,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "codes.refresher"),
		index:    initial,
	}
}

// OnRefresh registers a callback invoked after each successful refresh.
func (r *Refresher) OnRefresh(fn func(Index)) {
	r.onRefresh = fn
}

// Index returns the current code index. Safe for concurrent use; the
// returned index is never mutated after publication.
func (r *Refresher) Index() Index {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.index
}

// Start begins scheduled refreshing. An empty schedule disables the
// refresher without error. Stop is wired to context cancellation.
func (r *Refresher) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule == "" {
		r.logger.Info("refresh schedule not configured, skipping refresher")
		return nil
	}

	if _, err := cron.ParseStandard(r.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", r.schedule, err)
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		r.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule catalog refresh: %w", err)
	}

	r.cron.Start()
	r.running = true

	r.logger.Info("catalog refresher started", "schedule", r.schedule)

	go func() {
		<-ctx.Done()
		r.Stop()
	}()

	return nil
}

// refresh executes one refresh cycle.
func (r *Refresher) refresh(ctx context.Context) {
	records, err := r.client.Fetch(ctx)
	if err != nil {
		r.logger.Error("scheduled catalog refresh failed", "error", err)
		return
	}

	idx := BuildIndex(records)
	if len(idx) == 0 {
		// An empty catalog would turn every coded field invalid; keep
		// the previous index instead.
		r.logger.Warn("scheduled refresh returned empty catalog, keeping previous index")
		return
	}

	r.mu.Lock()
	r.index = idx
	r.mu.Unlock()

	r.logger.Info("catalog refreshed", "field_types", len(idx))

	if r.onRefresh != nil {
		r.onRefresh(idx)
	}
}

// Stop stops the scheduler and waits for a running refresh to finish.
// The wait happens outside the lock: an in-flight refresh needs r.mu to
// publish its index before it can complete.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	<-r.cron.Stop().Done()
	r.logger.Info("catalog refresher stopped")
}
