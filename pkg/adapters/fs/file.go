// Package fs provides disk-backed file handles for the pipeline.
//
// A File is an original handle: it reads and writes the disk directly and
// reports external changes through fsnotify.
package fs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/lenient/pkg/core"
)

// Config holds the configuration for a disk file handle.
type Config struct {
	Path string
	// Atomic buffers writes and commits them with a temp file and rename on
	// Close. When false, opening a write stream truncates the file at once,
	// the way editor hosts do.
	Atomic bool
	// Perm is used when creating the file. Zero means 0644.
	Perm         os.FileMode
	Logger       *slog.Logger
	ErrorHandler func(error)
}

// File implements core.File on the local filesystem.
type File struct {
	path   string
	config Config

	mu      sync.Mutex
	subs    map[core.FileEventType]map[int]func()
	nextSub int
	watch   *watcher
	events  []chan core.FileEvent
	closed  bool
}

// NewFile creates a handle for config.Path. The path is made absolute so
// watcher events can be matched against it.
func NewFile(config Config) (*File, error) {
	abs, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", config.Path, err)
	}
	if config.Perm == 0 {
		config.Perm = 0644
	}
	config.Path = abs
	return &File{
		path:   abs,
		config: config,
		subs:   make(map[core.FileEventType]map[int]func()),
	}, nil
}

// Path implements core.File.
func (f *File) Path() string {
	return f.path
}

// Exists implements core.File.
func (f *File) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// CreateReadStream implements core.File.
func (f *File) CreateReadStream() (io.ReadCloser, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", f.path, err)
	}
	return file, nil
}

// CreateWriteStream implements core.File.
func (f *File) CreateWriteStream() (io.WriteCloser, error) {
	if f.config.Atomic {
		return &atomicWriter{filename: f.path, perm: f.config.Perm}, nil
	}
	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.config.Perm)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s for writing: %w", f.path, err)
	}
	return file, nil
}

// OnDidChange implements core.File.
func (f *File) OnDidChange(fn func()) core.Disposable {
	return f.subscribe(core.FileChanged, fn)
}

// OnDidDelete implements core.File.
func (f *File) OnDidDelete(fn func()) core.Disposable {
	return f.subscribe(core.FileDeleted, fn)
}

// OnDidRename implements core.File.
func (f *File) OnDidRename(fn func()) core.Disposable {
	return f.subscribe(core.FileRenamed, fn)
}

// Events returns a channel receiving every change of the file until ctx is
// done or the handle is closed.
func (f *File) Events(ctx context.Context) (<-chan core.FileEvent, error) {
	ch := make(chan core.FileEvent, 16)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, fmt.Errorf("file handle closed: %s", f.path)
	}
	f.events = append(f.events, ch)
	f.mu.Unlock()

	if err := f.ensureWatcher(); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		f.removeEvents(ch)
	}()
	return ch, nil
}

// Close stops the watcher and closes every event channel.
func (f *File) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	w := f.watch
	f.watch = nil
	chans := f.events
	f.events = nil
	f.subs = make(map[core.FileEventType]map[int]func())
	f.mu.Unlock()

	if w != nil {
		w.stop()
	}
	for _, ch := range chans {
		close(ch)
	}
	return nil
}

func (f *File) subscribe(kind core.FileEventType, fn func()) core.Disposable {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return core.DisposableFunc(nil)
	}
	if f.subs[kind] == nil {
		f.subs[kind] = make(map[int]func())
	}
	id := f.nextSub
	f.nextSub++
	f.subs[kind][id] = fn
	f.mu.Unlock()

	if err := f.ensureWatcher(); err != nil {
		f.handleError(err)
	}

	return core.DisposableFunc(func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs[kind], id)
	})
}

func (f *File) ensureWatcher() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watch != nil || f.closed {
		return nil
	}
	w, err := startWatcher(f)
	if err != nil {
		return err
	}
	f.watch = w
	return nil
}

// dispatch delivers an event to subscribers and event channels. It runs on
// the watcher goroutine.
func (f *File) dispatch(event core.FileEvent) {
	f.mu.Lock()
	fns := make([]func(), 0, len(f.subs[event.Type]))
	for _, fn := range f.subs[event.Type] {
		fns = append(fns, fn)
	}
	chans := append([]chan core.FileEvent(nil), f.events...)
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	for _, ch := range chans {
		f.send(ch, event)
	}
}

// send never blocks the watcher and survives channels closed concurrently
// by removeEvents or Close.
func (f *File) send(ch chan core.FileEvent, event core.FileEvent) {
	defer func() {
		_ = recover()
	}()
	select {
	case ch <- event:
	default:
		f.logger().Debug("dropping file event, consumer is slow", "path", f.path, "type", event.Type)
	}
}

func (f *File) removeEvents(target chan core.FileEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, ch := range f.events {
		if ch == target {
			f.events = append(f.events[:i], f.events[i+1:]...)
			close(ch)
			return
		}
	}
}

func (f *File) handleError(err error) {
	if f.config.ErrorHandler != nil {
		f.config.ErrorHandler(err)
		return
	}
	f.logger().Error("file watcher error", "path", f.path, "error", err)
}

func (f *File) logger() *slog.Logger {
	if f.config.Logger != nil {
		return f.config.Logger
	}
	return slog.New(slog.DiscardHandler)
}

var _ core.File = (*File)(nil)
