package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestShouldProcessEvent(t *testing.T) {
	tw, err := NewTapeWatcher(nil, nil)
	if err != nil {
		t.Fatalf("NewTapeWatcher() error = %v", err)
	}
	defer tw.watcher.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create ev5", fsnotify.Event{Name: "a.ev5", Op: fsnotify.Create}, true},
		{"write ev5", fsnotify.Event{Name: "a.ev5", Op: fsnotify.Write}, true},
		{"uppercase extension", fsnotify.Event{Name: "a.EV5", Op: fsnotify.Write}, true},
		{"remove ignored", fsnotify.Event{Name: "a.ev5", Op: fsnotify.Remove}, false},
		{"chmod ignored", fsnotify.Event{Name: "a.ev5", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "a.csv", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: ".a.ev5", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tw.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatchDetectsNewTape(t *testing.T) {
	dir := t.TempDir()

	tw, err := NewTapeWatcher(&TapeWatcherConfig{
		Path:             dir,
		DebounceInterval: 20 * time.Millisecond,
		Extensions:       []string{".ev5"},
		SkipHidden:       true,
	}, nil)
	if err != nil {
		t.Fatalf("NewTapeWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 1)
	done := make(chan error, 1)
	go func() {
		done <- tw.Watch(ctx, func(path string) error {
			select {
			case seen <- path:
			default:
			}
			return nil
		})
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	tape := filepath.Join(dir, "crash.ev5")
	if err := os.WriteFile(tape, []byte("-- TEST DATA --\nX|A|Y\n"), 0o644); err != nil {
		t.Fatalf("failed to write tape: %v", err)
	}

	select {
	case path := <-seen:
		if path != tape {
			t.Errorf("callback path = %q, want %q", path, tape)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("tape event never reached the callback")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch() did not return after context cancellation")
	}
}

func TestWatchRejectsDoubleStart(t *testing.T) {
	dir := t.TempDir()
	tw, err := NewTapeWatcher(&TapeWatcherConfig{
		Path:             dir,
		DebounceInterval: 20 * time.Millisecond,
		Extensions:       []string{".ev5"},
	}, nil)
	if err != nil {
		t.Fatalf("NewTapeWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go tw.Watch(ctx, func(string) error { return nil })
	time.Sleep(50 * time.Millisecond)

	if err := tw.Watch(ctx, func(string) error { return nil }); err == nil {
		t.Error("second Watch() expected error, got nil")
	}
}
