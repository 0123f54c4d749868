package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoller_SnapshotAndRefresh(t *testing.T) {
	var failing atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		switch r.URL.Path {
		case "/api/habits":
			w.Write([]byte(`{"habits": [{"id": "h1", "name": "Run", "startTime": "07:00"}]}`))
		case "/api/routines":
			w.Write([]byte(`{"routines": [{"id": "r1", "name": "Wind down", "time": "21:00"}]}`))
		case "/api/todos":
			w.Write([]byte(`{"todos": []}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	poller := NewPoller(NewClient(server.URL, ""), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	// The initial fetch happens immediately
	select {
	case <-poller.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no update signal from initial fetch")
	}

	snap := poller.Snapshot()
	if snap.Err != nil {
		t.Fatalf("snapshot error = %v", snap.Err)
	}
	if len(snap.Habits) != 1 || len(snap.Routines) != 1 || len(snap.Todos) != 0 {
		t.Fatalf("snapshot sizes = %d/%d/%d, want 1/1/0", len(snap.Habits), len(snap.Routines), len(snap.Todos))
	}

	// Backend failure keeps the previous collections and records the error
	failing.Store(true)
	poller.Refresh()
	select {
	case <-poller.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("no update signal from refresh")
	}

	snap = poller.Snapshot()
	if snap.Err == nil {
		t.Error("snapshot error not recorded after backend failure")
	}
	if len(snap.Habits) != 1 {
		t.Errorf("stale habits dropped: got %d, want 1", len(snap.Habits))
	}
}
