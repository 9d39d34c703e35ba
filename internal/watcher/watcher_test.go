package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/datngo2103/mombot/internal/logger"
	"github.com/datngo2103/mombot/internal/store"
)

type recordingProcessor struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingProcessor) Process(ctx context.Context, meetingID string) error {
	return nil
}

func (r *recordingProcessor) Dispatch(ctx context.Context, meetingID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, meetingID)
}

func (r *recordingProcessor) dispatched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func startWatcher(t *testing.T) (string, *store.Store, *recordingProcessor, context.CancelFunc) {
	t.Helper()

	uploads := t.TempDir()
	st, err := store.New(24 * time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	proc := &recordingProcessor{}

	w, err := New(uploads, []string{".mp3", ".mp4", ".wav"}, st, proc, logger.New("error"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)
	t.Cleanup(func() {
		cancel()
		w.Stop()
	})

	// Let the watch loop spin up before files are written.
	time.Sleep(100 * time.Millisecond)

	return uploads, st, proc, cancel
}

func waitFor(t *testing.T, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return cond()
}

func TestWatcherIngestsDroppedRecording(t *testing.T) {
	uploads, st, proc, _ := startWatcher(t)

	path := filepath.Join(uploads, "weekly_sync.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, func() bool { return len(proc.dispatched()) == 1 }) {
		t.Fatal("recording was not dispatched")
	}

	meetings, _ := st.List()
	if len(meetings) != 1 {
		t.Fatalf("store has %d meetings, want 1", len(meetings))
	}
	if meetings[0].Title != "weekly sync" {
		t.Errorf("title = %q, want %q", meetings[0].Title, "weekly sync")
	}
	if meetings[0].SourceFile != path {
		t.Errorf("source = %q, want %q", meetings[0].SourceFile, path)
	}
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	uploads, st, proc, _ := startWatcher(t)

	for _, name := range []string{"notes.txt", ".hidden.mp3"} {
		if err := os.WriteFile(filepath.Join(uploads, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	time.Sleep(800 * time.Millisecond)

	if n := len(proc.dispatched()); n != 0 {
		t.Errorf("dispatched %d files, want 0", n)
	}
	if meetings, _ := st.List(); len(meetings) != 0 {
		t.Errorf("store has %d meetings, want 0", len(meetings))
	}
}

func TestWatcherSkipsRegisteredFiles(t *testing.T) {
	uploads, st, proc, _ := startWatcher(t)

	path := filepath.Join(uploads, "retro.mp4")

	// Simulate the HTTP handler registering before writing the file.
	if err := st.Insert(&store.Meeting{ID: "m1", Title: "Retro", SourceFile: path}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(800 * time.Millisecond)

	if n := len(proc.dispatched()); n != 0 {
		t.Errorf("dispatched %d files, want 0", n)
	}
	if meetings, _ := st.List(); len(meetings) != 1 {
		t.Errorf("store has %d meetings, want the pre-registered one only", len(meetings))
	}
}
