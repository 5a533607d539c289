package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/lenient/pkg/core"
)

// debounceWindow coalesces bursts such as truncate-then-write.
const debounceWindow = 50 * time.Millisecond

// watcher observes the parent directory of a File, so replacements by
// rename (atomic saves) keep being reported.
type watcher struct {
	file    *File
	fsw     *fsnotify.Watcher
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	pending map[core.FileEventType]*time.Timer
	stopped bool
}

func startWatcher(f *File) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(f.path)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", f.path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &watcher{
		file:    f,
		fsw:     fsw,
		cancel:  cancel,
		done:    make(chan struct{}),
		pending: make(map[core.FileEventType]*time.Timer),
	}

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		f.handleError(fmt.Errorf("watcher panic: %w", err))
	}))
	return w, nil
}

func (w *watcher) run(ctx context.Context) error {
	defer close(w.done)
	defer w.fsw.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.file.path {
				continue
			}
			if kind, ok := mapEvent(event); ok {
				w.debounce(kind)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.file.handleError(err)
		}
	}
}

func mapEvent(event fsnotify.Event) (core.FileEventType, bool) {
	switch {
	case event.Has(fsnotify.Remove):
		return core.FileDeleted, true
	case event.Has(fsnotify.Rename):
		return core.FileRenamed, true
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		return core.FileChanged, true
	}
	return "", false
}

func (w *watcher) debounce(kind core.FileEventType) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if t, ok := w.pending[kind]; ok {
		t.Reset(debounceWindow)
		return
	}
	w.pending[kind] = time.AfterFunc(debounceWindow, func() {
		w.mu.Lock()
		delete(w.pending, kind)
		stopped := w.stopped
		w.mu.Unlock()
		if stopped {
			return
		}
		w.file.dispatch(core.FileEvent{
			Type:      kind,
			Path:      w.file.path,
			Timestamp: time.Now().Unix(),
		})
	})
}

func (w *watcher) active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.stopped
}

// stop cancels the loop and pending timers, waiting briefly for the loop
// to exit.
func (w *watcher) stop() {
	w.mu.Lock()
	w.stopped = true
	for kind, t := range w.pending {
		t.Stop()
		delete(w.pending, kind)
	}
	w.mu.Unlock()

	w.cancel()
	select {
	case <-w.done:
	case <-time.After(2 * time.Second):
		w.file.logger().Warn("watcher did not stop in time", "path", w.file.path)
	}
}
