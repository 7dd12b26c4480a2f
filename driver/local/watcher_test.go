package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gobeaver/fsops"
)

const watchTimeout = 5 * time.Second

// waitForKind drains the subscription until an event of the wanted kind
// arrives, the channel closes, or the timeout fires.
func waitForKind(t *testing.T, sub *fsops.Subscription, want fsops.EventKind) fsops.ChangeEvent {
	t.Helper()
	deadline := time.After(watchTimeout)
	for {
		select {
		case ev, ok := <-sub.Events():
			if !ok {
				t.Fatalf("subscription closed before %s event arrived", want)
			}
			if ev.Kind == want {
				return ev
			}
		case <-deadline:
			t.Fatalf("no %s event within %s", want, watchTimeout)
		}
	}
}

// waitForClose drains the subscription until the channel closes or the
// timeout fires.
func waitForClose(t *testing.T, sub *fsops.Subscription) {
	t.Helper()
	deadline := time.After(watchTimeout)
	for {
		select {
		case _, ok := <-sub.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("subscription did not close within %s", watchTimeout)
		}
	}
}

func TestWatchMissingPath(t *testing.T) {
	a := newTestAdapter(t)

	if _, err := a.Watch(context.Background(), "missing.txt"); !fsops.IsNotExist(err) {
		t.Errorf("Watch(missing) error = %v, want ErrNotExist", err)
	}
}

func TestWatchFileModified(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	full := filepath.Join(a.root, "w.txt")
	if err := os.WriteFile(full, []byte("initial"), 0o644); err != nil {
		t.Fatal(err)
	}

	sub, err := a.Watch(ctx, "w.txt")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Cancel()

	// External modification outside the adapter
	if err := os.WriteFile(full, []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitForKind(t, sub, fsops.EventModified)
	if ev.Path != "w.txt" {
		t.Errorf("event path = %q, want w.txt", ev.Path)
	}
	if ev.Time.IsZero() {
		t.Error("event timestamp is zero")
	}
}

func TestWatchDirectorySeesChildren(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	if err := a.CreateDir(ctx, "d"); err != nil {
		t.Fatal(err)
	}

	sub, err := a.Watch(ctx, "d")
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer sub.Cancel()

	if err := os.WriteFile(filepath.Join(a.root, "d", "child.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ev := waitForKind(t, sub, fsops.EventRenamed)
	if ev.Path != "d/child.txt" {
		t.Errorf("event path = %q, want d/child.txt", ev.Path)
	}
}

func TestWatchCancelIdempotent(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	full := filepath.Join(a.root, "c.txt")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sub, err := a.Watch(ctx, "c.txt")
	if err != nil {
		t.Fatal(err)
	}

	sub.Cancel()
	sub.Cancel()
	sub.Cancel()

	if sub.State() != fsops.WatchCancelled {
		t.Errorf("state = %v, want WatchCancelled", sub.State())
	}
	waitForClose(t, sub)
}

func TestWatchPathRemoved(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	full := filepath.Join(a.root, "gone.txt")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	sub, err := a.Watch(ctx, "gone.txt")
	if err != nil {
		t.Fatal(err)
	}

	if err := os.Remove(full); err != nil {
		t.Fatal(err)
	}

	// The removal event is delivered, then the channel closes.
	ev := waitForKind(t, sub, fsops.EventRenamed)
	if ev.Path != "gone.txt" {
		t.Errorf("event path = %q, want gone.txt", ev.Path)
	}
	waitForClose(t, sub)

	if sub.State() != fsops.WatchPathRemoved {
		t.Errorf("state = %v, want WatchPathRemoved", sub.State())
	}

	// Cancel after removal is a no-op, not a panic.
	sub.Cancel()
	if sub.State() != fsops.WatchPathRemoved {
		t.Errorf("state after Cancel = %v, want WatchPathRemoved", sub.State())
	}
}

func TestWatchContextCancellation(t *testing.T) {
	a := newTestAdapter(t)

	full := filepath.Join(a.root, "ctx.txt")
	if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := a.Watch(ctx, "ctx.txt")
	if err != nil {
		t.Fatal(err)
	}

	cancel()
	waitForClose(t, sub)

	if sub.State() != fsops.WatchCancelled {
		t.Errorf("state = %v, want WatchCancelled", sub.State())
	}
}

func TestWatchCancelledContext(t *testing.T) {
	a := newTestAdapter(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.Watch(ctx, "anything"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
