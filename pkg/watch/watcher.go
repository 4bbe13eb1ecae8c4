package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// TapeWatcher watches a directory for tape file changes and invokes a
// validation callback per settled file.
type TapeWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	config  *TapeWatcherConfig

	// debouncers holds one debouncer per tape path, so concurrent
	// arrivals of different tapes do not cancel each other.
	debouncers map[string]*Debouncer
	debounceMu sync.Mutex

	mu      sync.RWMutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// TapeWatcherConfig contains configuration for the tape watcher.
type TapeWatcherConfig struct {
	// Path is the directory to watch.
	Path string

	// DebounceInterval is the quiet period after the last event on a
	// path before the callback fires (default: 500ms).
	DebounceInterval time.Duration

	// Extensions is the list of file extensions to react to
	// (e.g. ".ev5").
	Extensions []string

	// SkipHidden controls whether to skip hidden files.
	SkipHidden bool
}

// DefaultTapeWatcherConfig returns the default watcher configuration.
func DefaultTapeWatcherConfig() *TapeWatcherConfig {
	return &TapeWatcherConfig{
		DebounceInterval: 500 * time.Millisecond,
		Extensions:       []string{".ev5"},
		SkipHidden:       true,
	}
}

// NewTapeWatcher creates a new tape watcher.
func NewTapeWatcher(config *TapeWatcherConfig, logger *slog.Logger) (*TapeWatcher, error) {
	if config == nil {
		config = DefaultTapeWatcherConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &TapeWatcher{
		watcher:    watcher,
		logger:     logger,
		config:     config,
		debouncers: make(map[string]*Debouncer),
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}, nil
}

// Watch starts watching for tape changes and calls onTape for each
// settled file. This blocks until the context is cancelled or Stop is
// called.
func (tw *TapeWatcher) Watch(ctx context.Context, onTape func(path string) error) error {
	tw.mu.Lock()
	if tw.running {
		tw.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	tw.running = true
	tw.mu.Unlock()

	defer func() {
		tw.mu.Lock()
		tw.running = false
		tw.mu.Unlock()
		close(tw.doneCh)
	}()

	if err := tw.addPath(tw.config.Path); err != nil {
		return fmt.Errorf("failed to watch path: %w", err)
	}

	tw.logger.Info("tape watcher started",
		"path", tw.config.Path,
		"debounce_ms", tw.config.DebounceInterval.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			tw.logger.Info("tape watcher stopped (context cancelled)")
			return nil

		case <-tw.stopCh:
			tw.logger.Info("tape watcher stopped")
			return nil

		case event, ok := <-tw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !tw.shouldProcessEvent(event) {
				continue
			}

			tw.logger.Debug("tape event detected",
				"path", event.Name,
				"op", event.Op.String(),
			)

			path := event.Name
			tw.debouncerFor(path).Trigger(func() {
				tw.logger.Info("validating tape", "path", path)
				if err := onTape(path); err != nil {
					tw.logger.Error("tape validation failed",
						"path", path,
						"error", err,
					)
				}
			})

		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			tw.logger.Error("tape watcher error", "error", err)
			// Continue watching despite errors
		}
	}
}

// Stop stops the tape watcher.
func (tw *TapeWatcher) Stop() error {
	tw.mu.Lock()
	if !tw.running {
		tw.mu.Unlock()
		return nil
	}
	tw.mu.Unlock()

	close(tw.stopCh)
	<-tw.doneCh

	tw.debounceMu.Lock()
	for _, d := range tw.debouncers {
		d.Stop()
	}
	tw.debounceMu.Unlock()

	if err := tw.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// debouncerFor returns the debouncer for a path, creating it on first
// use.
func (tw *TapeWatcher) debouncerFor(path string) *Debouncer {
	tw.debounceMu.Lock()
	defer tw.debounceMu.Unlock()

	d, ok := tw.debouncers[path]
	if !ok {
		d = NewDebouncer(tw.config.DebounceInterval)
		tw.debouncers[path] = d
	}
	return d
}

// addPath adds the watched directory. Single files are accepted too.
func (tw *TapeWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return tw.watcher.Add(path)
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if tw.config.SkipHidden && strings.HasPrefix(filepath.Base(p), ".") && p != path {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if err := tw.watcher.Add(p); err != nil {
				return fmt.Errorf("failed to watch directory %q: %w", p, err)
			}
			tw.logger.Debug("watching directory", "path", p)
		}
		return nil
	})
}

// shouldProcessEvent determines whether an event should trigger
// validation.
func (tw *TapeWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	// Writes and creates matter; chmod and removals do not.
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	if !tw.hasValidExtension(ext) {
		return false
	}

	if tw.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}

	return true
}

// hasValidExtension checks whether a file extension is watched.
func (tw *TapeWatcher) hasValidExtension(ext string) bool {
	for _, validExt := range tw.config.Extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}
