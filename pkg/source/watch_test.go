package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/spritekit/pkg/errors"
)

func TestIsImageEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"create png", fsnotify.Event{Name: "/i/a.png", Op: fsnotify.Create}, true},
		{"write upper", fsnotify.Event{Name: "/i/A.PNG", Op: fsnotify.Write}, true},
		{"remove", fsnotify.Event{Name: "/i/a.png", Op: fsnotify.Remove}, true},
		{"rename", fsnotify.Event{Name: "/i/a.png", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "/i/a.png", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/i/notes.txt", Op: fsnotify.Write}, false},
		{"editor swap", fsnotify.Event{Name: "/i/.a.png.swp", Op: fsnotify.Create}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isImageEvent(tt.ev); got != tt.want {
				t.Errorf("isImageEvent(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestWatcherRun(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { changes <- struct{}{} })
	}()

	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	writePNG(t, filepath.Join(dir, "angle.png"), 4, 4)

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for new png")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("NewWatcher(missing) error = %v, want INVALID_PATH", err)
	}
}

func TestWatcherIgnore(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.Debounce = 20 * time.Millisecond
	out := filepath.Join(dir, "atlas.png")
	if err := w.Ignore(out); err != nil {
		t.Fatal(err)
	}
	if !w.isIgnored(out) || w.isIgnored(filepath.Join(dir, "angle.png")) {
		t.Fatal("isIgnored reports the wrong files")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan struct{}, 8)
	go w.Run(ctx, func() { changes <- struct{}{} })

	writePNG(t, out, 4, 4)
	select {
	case <-changes:
		t.Fatal("write to ignored file reported a change")
	case <-time.After(300 * time.Millisecond):
	}

	writePNG(t, filepath.Join(dir, "angle.png"), 4, 4)
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for new png")
	}
}
