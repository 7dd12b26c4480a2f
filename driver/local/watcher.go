package local

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gobeaver/fsops"
)

// Watch implements fsops.CanWatch using fsnotify for native filesystem
// events. The subscription terminates on Cancel, on context cancellation,
// or on removal of the watched path itself (state WatchPathRemoved).
func (a *Adapter) Watch(ctx context.Context, path string) (*fsops.Subscription, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	fullPath, err := a.abs(path)
	if err != nil {
		return nil, err
	}

	// The watched path must exist at start time.
	if _, err := os.Stat(fullPath); err != nil {
		return nil, pathErr("watch", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &fsops.PathError{Op: "watch", Path: path, Err: err}
	}

	if err := watcher.Add(fullPath); err != nil {
		watcher.Close()
		return nil, pathErr("watch", path, err)
	}

	sub := fsops.NewSubscription(a.watchBuffer, func() {
		watcher.Close()
	})

	go a.forwardEvents(ctx, watcher, sub, fullPath)

	return sub, nil
}

// forwardEvents pumps fsnotify notifications into the subscription until
// the watcher is closed, the context is cancelled, or the watched path
// disappears.
func (a *Adapter) forwardEvents(ctx context.Context, watcher *fsnotify.Watcher, sub *fsops.Subscription, watchedPath string) {
	for {
		select {
		case <-ctx.Done():
			sub.Cancel()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				// Watcher closed by subscription teardown.
				return
			}

			relPath, err := filepath.Rel(a.root, event.Name)
			if err != nil {
				continue
			}

			sub.Publish(fsops.ChangeEvent{
				Kind: eventKind(event.Op),
				Path: filepath.ToSlash(relPath),
				Time: time.Now(),
			})

			// Removal or rename of the watched path itself is terminal.
			if event.Name == watchedPath && event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				sub.NotifyRemoved()
				return
			}

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Transient notification errors are not fatal to the watch.
		}
	}
}

// eventKind maps fsnotify operations onto the facade's two event kinds:
// entry lifecycle changes (create/remove/rename) are Renamed, content and
// metadata changes are Modified.
func eventKind(op fsnotify.Op) fsops.EventKind {
	if op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		return fsops.EventRenamed
	}
	return fsops.EventModified
}
