package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a change notification.
type EventType int

const (
	// EventCollectionChanged indicates records in the given collection were
	// written or removed.
	EventCollectionChanged EventType = iota

	// EventCollectionsInvalidated signals a change that could not be traced
	// to a single collection; callers should reload everything.
	EventCollectionsInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventCollectionChanged:
		return "changed"
	case EventCollectionsInvalidated:
		return "invalidated"
	}
	return "unknown"
}

// Event is emitted by Watch when the underlying files change.
type Event struct {
	Type       EventType
	Collection string
}

// Watcher is implemented by stores that can stream change notifications.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

var _ Watcher = (*Diskv)(nil)

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than blocking the watcher. The
// channel is closed once ctx is done or the watcher fails.
func (s *Diskv) Watch(ctx context.Context) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() { _ = watcher.Close() })
	}

	dirs, err := collectDirs(s.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)
	var sendMu sync.Mutex
	done := false
	send := func(ev Event) {
		sendMu.Lock()
		defer sendMu.Unlock()
		if done {
			return
		}
		select {
		case events <- ev:
		default:
		}
	}

	go func() {
		defer func() {
			sendMu.Lock()
			done = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Type: EventCollectionsInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create == fsnotify.Create {
					// A new directory is a new collection; watch it too.
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found && watcher.Add(dir) == nil {
							watched[dir] = struct{}{}
						}
						throttle.Enqueue(Event{Type: EventCollectionsInvalidated}, send)
						continue
					}
				}

				collection := s.collectionForPath(evt.Name)
				if collection == "" {
					throttle.Enqueue(Event{Type: EventCollectionsInvalidated}, send)
					continue
				}
				throttle.Enqueue(Event{Type: EventCollectionChanged, Collection: collection}, send)
			}
		}
	}()

	return events, nil
}

func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func (s *Diskv) collectionForPath(path string) string {
	rel, err := filepath.Rel(s.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) < 2 || strings.HasPrefix(parts[0], ".") {
		return ""
	}
	return parts[0]
}

// eventThrottle coalesces bursts of filesystem activity into one event per
// collection.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Collection] = struct{}{}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() { t.flush(send) })
	}
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, collections := range pending {
		for collection := range collections {
			send(Event{Type: eventType, Collection: collection})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
