package codes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestRefresherInitialIndex(t *testing.T) {
	initial := BuildIndex([]CatalogRecord{{CodeName: "SPEED", Code: "A"}})
	r := NewRefresher(NewClient(ClientConfig{}), "", initial)

	if got := r.Index(); !got.Contains("SPEED", "A") {
		t.Errorf("Index() = %v, want the initial index", got)
	}
}

func TestRefresherEmptyScheduleIsDisabled(t *testing.T) {
	r := NewRefresher(NewClient(ClientConfig{}), "", nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start() with empty schedule error = %v", err)
	}
	r.Stop() // never started, must be a no-op
}

func TestRefresherInvalidSchedule(t *testing.T) {
	r := NewRefresher(NewClient(ClientConfig{}), "not a cron line", nil)
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("Start() expected error for invalid schedule, got nil")
	}
}

func TestRefresherStopDuringRefresh(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		once.Do(func() { close(started) })
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"codeName": "SPEED", "code": "A"}]}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{URL: server.URL, Timeout: 5 * time.Second})
	r := NewRefresher(client, "@every 100ms", nil)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled refresh never fired")
	}

	// Stop while the refresh is mid-fetch. It must wait for the refresh
	// to finish without blocking its index publication.
	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()

	time.Sleep(50 * time.Millisecond)
	close(release)

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop() did not return after the in-flight refresh finished")
	}

	if !r.Index().Contains("SPEED", "A") {
		t.Error("in-flight refresh result was not published")
	}
}
