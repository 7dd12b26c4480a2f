package fsops

import (
	"sync"
	"time"
)

// EventKind classifies a filesystem change notification.
type EventKind string

const (
	// EventRenamed covers creation, removal and rename of an entry.
	EventRenamed EventKind = "renamed"

	// EventModified covers content and metadata changes.
	EventModified EventKind = "modified"
)

// ChangeEvent is a single filesystem change notification.
type ChangeEvent struct {
	Kind EventKind
	Path string
	Time time.Time
}

// WatchState is the lifecycle state of a Subscription.
type WatchState int

const (
	// WatchActive means events are being delivered.
	WatchActive WatchState = iota

	// WatchCancelled is terminal: the caller cancelled the subscription.
	WatchCancelled

	// WatchPathRemoved is terminal: the watched path itself was removed
	// and the subscription shut down on its own.
	WatchPathRemoved
)

func (s WatchState) String() string {
	switch s {
	case WatchActive:
		return "active"
	case WatchCancelled:
		return "cancelled"
	case WatchPathRemoved:
		return "path-removed"
	default:
		return "unknown"
	}
}

// Subscription represents an active watch on a path. It is created by a
// driver's Watch method, delivers zero or more ChangeEvents on Events(),
// and terminates either by explicit Cancel or by removal of the watched
// path, whichever occurs first. The events channel is closed on
// termination; State reports why.
//
// Events are delivered in backend notification order. If the consumer
// falls behind and the buffer fills, further events are dropped rather
// than blocking the notifier.
type Subscription struct {
	mu       sync.Mutex
	events   chan ChangeEvent
	state    WatchState
	teardown func()
}

// NewSubscription creates a Subscription with the given event buffer.
// teardown is invoked exactly once when the subscription terminates;
// drivers use it to release their notification resources. Intended for
// driver implementations, not consumers.
func NewSubscription(buffer int, teardown func()) *Subscription {
	if buffer <= 0 {
		buffer = DefaultWatchBuffer
	}
	return &Subscription{
		events:   make(chan ChangeEvent, buffer),
		teardown: teardown,
	}
}

// DefaultWatchBuffer is the event buffer size used when a driver or the
// configuration does not specify one.
const DefaultWatchBuffer = 64

// Events returns the channel change events are delivered on. The channel
// is closed when the subscription terminates.
func (s *Subscription) Events() <-chan ChangeEvent {
	return s.events
}

// State returns the current lifecycle state.
func (s *Subscription) State() WatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cancel stops delivery and closes the events channel. Safe to call
// multiple times; calls after the first are no-ops.
func (s *Subscription) Cancel() {
	s.terminate(WatchCancelled)
}

// Publish delivers an event to the consumer. It reports false when the
// subscription has terminated or the event was dropped because the buffer
// is full. Intended for driver implementations.
func (s *Subscription) Publish(ev ChangeEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != WatchActive {
		return false
	}
	select {
	case s.events <- ev:
		return true
	default:
		// Consumer is not keeping up; drop rather than block the notifier.
		return false
	}
}

// NotifyRemoved terminates the subscription because the watched path was
// removed. Intended for driver implementations.
func (s *Subscription) NotifyRemoved() {
	s.terminate(WatchPathRemoved)
}

func (s *Subscription) terminate(state WatchState) {
	s.mu.Lock()
	if s.state != WatchActive {
		s.mu.Unlock()
		return
	}
	s.state = state
	td := s.teardown
	s.teardown = nil
	close(s.events)
	s.mu.Unlock()

	if td != nil {
		td()
	}
}

// OnEvent consumes a subscription on a background goroutine, invoking fn
// for every event until the subscription terminates. Returns a cancel
// function (idempotent, delegates to Subscription.Cancel).
//
// Example:
//
//	sub, err := watcher.Watch(ctx, "config.json")
//	if err != nil {
//	    return err
//	}
//	cancel := fsops.OnEvent(sub, func(ev fsops.ChangeEvent) {
//	    reloadConfig()
//	})
//	defer cancel()
func OnEvent(sub *Subscription, fn func(ChangeEvent)) (cancel func()) {
	go func() {
		for ev := range sub.Events() {
			fn(ev)
		}
	}()
	return sub.Cancel
}
