// Package fswatch supplements the core builder with a watch-and-rebuild
// loop (SPEC_FULL.md §6): it watches every source file the last build
// touched and triggers a caller-supplied rebuild whenever one changes.
// Grounded on the teacher's notifyWatcher (pkg/api/notify_watcher.go), with
// the fs.WatchData/logger.LogLevel specifics replaced by the plain
// path-set/callback shape this domain needs.
package fswatch

import (
	"sync"

	"github.com/fsnotify/fsnotify"
)

// RebuildFunc reruns a build and returns the set of source files the new
// build result depends on, so the watcher can adjust what it's watching.
type RebuildFunc func(dirtyPath string) (watchedPaths []string, err error)

// Watcher re-triggers RebuildFunc whenever a watched file is written to or
// removed, and re-arms itself against the new build's file set each time.
type Watcher struct {
	mu      sync.Mutex
	inner   *fsnotify.Watcher
	watched map[string]struct{}
	rebuild RebuildFunc
	onError func(error)

	done chan struct{}
}

// New creates a Watcher and performs the first Add pass over initialPaths.
func New(initialPaths []string, rebuild RebuildFunc, onError func(error)) (*Watcher, error) {
	inner, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		inner:   inner,
		watched: make(map[string]struct{}),
		rebuild: rebuild,
		onError: onError,
		done:    make(chan struct{}),
	}
	w.addPaths(initialPaths)
	return w, nil
}

func (w *Watcher) addPaths(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range paths {
		if _, ok := w.watched[p]; ok {
			continue
		}
		if err := w.inner.Add(p); err != nil {
			if w.onError != nil {
				w.onError(err)
			}
			continue
		}
		w.watched[p] = struct{}{}
	}
}

// Run blocks, dispatching rebuilds until Stop is called.
func (w *Watcher) Run() {
	for {
		select {
		case event, ok := <-w.inner.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Create) {
				newPaths, err := w.rebuild(event.Name)
				if err != nil {
					if w.onError != nil {
						w.onError(err)
					}
					continue
				}
				w.addPaths(newPaths)
			}
		case err, ok := <-w.inner.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		case <-w.done:
			return
		}
	}
}

// Stop closes the underlying fsnotify watcher and unblocks Run.
func (w *Watcher) Stop() {
	close(w.done)
	w.inner.Close()
}
