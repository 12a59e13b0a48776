package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type fakeWatcher struct {
	events chan Event
	errs   chan error
	added  []string
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{events: make(chan Event, 16), errs: make(chan error, 1)}
}

func (f *fakeWatcher) Events() <-chan Event  { return f.events }
func (f *fakeWatcher) Errors() <-chan error  { return f.errs }
func (f *fakeWatcher) Add(name string) error { f.added = append(f.added, name); return nil }
func (f *fakeWatcher) Close() error          { close(f.events); return nil }

func TestOpString(t *testing.T) {
	if got := (OpCreate | OpWrite).String(); got != "CREATE|WRITE" {
		t.Errorf("String() = %q", got)
	}
	if got := Op(0).String(); got != "NONE" {
		t.Errorf("String() = %q", got)
	}
}

func TestRunDebouncesAndDedupes(t *testing.T) {
	fw := newFakeWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, fw, 20*time.Millisecond, func(paths []string) { calls <- paths })
	}()

	fw.events <- Event{Path: "b.ml", Op: OpWrite}
	fw.events <- Event{Path: "a.ml", Op: OpCreate}
	fw.events <- Event{Path: "b.ml", Op: OpWrite}
	fw.events <- Event{Path: "c.ml", Op: OpChmod}

	select {
	case paths := <-calls:
		if want := []string{"a.ml", "b.ml"}; !reflect.DeepEqual(paths, want) {
			t.Errorf("paths = %v, want %v", paths, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for debounced callback")
	}

	fw.events <- Event{Path: "c.ml", Op: OpRename}
	select {
	case paths := <-calls:
		if want := []string{"c.ml"}; !reflect.DeepEqual(paths, want) {
			t.Errorf("paths = %v, want %v", paths, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for second callback")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v after cancel", err)
	}
}

func TestRunIgnoresChmodOnly(t *testing.T) {
	fw := newFakeWatcher()
	called := false

	fw.events <- Event{Path: "a.ml", Op: OpChmod}
	fw.Close()

	if err := Run(context.Background(), fw, time.Millisecond, func([]string) { called = true }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called {
		t.Error("chmod alone should not trigger a callback")
	}
}

func TestRunReturnsWatcherError(t *testing.T) {
	fw := newFakeWatcher()
	boom := errors.New("boom")
	fw.errs <- boom

	err := Run(context.Background(), fw, time.Millisecond, func([]string) {})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
}

func TestFSNotifyWatcher(t *testing.T) {
	fw, err := NewFSWatcher()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer fw.Close()

	dir := t.TempDir()
	if err := fw.Add(dir); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "f.ml")
	go func() { _ = os.WriteFile(path, []byte("let a = 1;"), 0o644) }()

	select {
	case ev := <-fw.Events():
		if ev.Path != path || !Relevant(ev) {
			t.Errorf("unexpected event %+v", ev)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for fsnotify event")
	}
}

func TestFSNotifyWatcherCloseUnblocksUndrainedLoop(t *testing.T) {
	fw, err := NewFSWatcher()
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}

	dir := t.TempDir()
	if err := fw.Add(dir); err != nil {
		t.Fatal(err)
	}

	// More events than the channel buffers, with no reader.
	for i := 0; i < 300; i++ {
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("f%d.ml", i)), []byte("x;"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(100 * time.Millisecond)

	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	timeout := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-fw.Events():
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("event channel was not closed after Close")
		}
	}
}
