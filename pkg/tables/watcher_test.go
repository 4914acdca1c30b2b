package tables

import (
	"context"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestIsTableFileEvent(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: "/data/tuss.yaml", Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: "/data/cbo.yml", Op: fsnotify.Create}, true},
		{"uppercase extension", fsnotify.Event{Name: "/data/tuss.YAML", Op: fsnotify.Write}, true},
		{"chmod ignored", fsnotify.Event{Name: "/data/tuss.yaml", Op: fsnotify.Chmod}, false},
		{"hidden file ignored", fsnotify.Event{Name: "/data/.tuss.yaml.swp", Op: fsnotify.Write}, false},
		{"non yaml ignored", fsnotify.Event{Name: "/data/tuss.csv", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTableFileEvent(tt.event); got != tt.want {
				t.Errorf("isTableFileEvent(%v) = %t, want %t", tt.event, got, tt.want)
			}
		})
	}
}

func TestWatcherTriggersReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	reloaded := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = w.Watch(ctx, func() error {
			select {
			case reloaded <- struct{}{}:
			default:
			}
			return nil
		})
	}()
	defer w.Stop()

	// Give the watch loop time to register the directory.
	time.Sleep(50 * time.Millisecond)
	writeTableFile(t, dir, "tuss.yaml", `- code: "1"`)

	select {
	case <-reloaded:
	case <-time.After(3 * time.Second):
		t.Fatal("reload callback never fired after a table file write")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()

	fired := make(chan struct{}, 8)
	for i := 0; i < 5; i++ {
		d.trigger(func() { fired <- struct{}{} })
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("debounced callback never fired")
	}

	select {
	case <-fired:
		t.Error("burst of triggers fired more than once")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherStopBeforeWatchIsNoop(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() before Watch error = %v", err)
	}
}
