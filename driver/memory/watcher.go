package memory

import (
	"context"
	"time"

	"github.com/gobeaver/fsops"
)

// Watch implements fsops.CanWatch. Events are synthesized from mutations
// performed through this adapter; there is no external notification source
// for in-memory state.
func (a *Adapter) Watch(ctx context.Context, rawPath string) (*fsops.Subscription, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	p, err := fsops.ResolvePath(rawPath)
	if err != nil {
		return nil, err
	}

	a.mu.RLock()
	_, isFile := a.files[p]
	_, isDir := a.dirs[p]
	a.mu.RUnlock()

	if !isFile && !isDir {
		return nil, &fsops.PathError{Op: "watch", Path: rawPath, Err: fsops.ErrNotExist}
	}

	entry := &watchEntry{path: p}
	entry.sub = fsops.NewSubscription(a.watchBuffer, func() {
		a.removeWatch(entry)
	})

	a.watchMu.Lock()
	a.watches = append(a.watches, entry)
	a.watchMu.Unlock()

	// Tie subscription lifetime to the context
	go func() {
		<-ctx.Done()
		entry.sub.Cancel()
	}()

	return entry.sub, nil
}

func (a *Adapter) removeWatch(entry *watchEntry) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()

	for i, e := range a.watches {
		if e == entry {
			a.watches = append(a.watches[:i], a.watches[i+1:]...)
			return
		}
	}
}

// notify delivers a change event to every subscription watching the
// mutated path or an ancestor of it.
func (a *Adapter) notify(p string, kind fsops.EventKind) {
	now := time.Now()

	a.watchMu.RLock()
	defer a.watchMu.RUnlock()

	for _, entry := range a.watches {
		if isUnder(p, entry.path) {
			entry.sub.Publish(fsops.ChangeEvent{Kind: kind, Path: p, Time: now})
		}
	}
}

// notifyRemoved handles removal of path p: watchers of ancestors get a
// Renamed event, watchers of p or of anything under it lost their watched
// path and terminate. Entries are copied out before termination because
// the subscription teardown re-enters removeWatch.
func (a *Adapter) notifyRemoved(p string) {
	now := time.Now()

	a.watchMu.RLock()
	entries := make([]*watchEntry, len(a.watches))
	copy(entries, a.watches)
	a.watchMu.RUnlock()

	for _, entry := range entries {
		switch {
		case isUnder(entry.path, p):
			entry.sub.Publish(fsops.ChangeEvent{Kind: fsops.EventRenamed, Path: p, Time: now})
			entry.sub.NotifyRemoved()
		case isUnder(p, entry.path):
			entry.sub.Publish(fsops.ChangeEvent{Kind: fsops.EventRenamed, Path: p, Time: now})
		}
	}
}
