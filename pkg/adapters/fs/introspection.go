package fs

import (
	"github.com/aretw0/introspection"
)

// FileState exposes internal state for observability.
type FileState struct {
	Path          string `json:"path"`
	Atomic        bool   `json:"atomic"`
	Exists        bool   `json:"exists"`
	WatcherActive bool   `json:"watcher_active"`
	Subscribers   int    `json:"subscribers"`
	EventStreams  int    `json:"event_streams"`
	Closed        bool   `json:"closed"`
}

// State implements introspection.Introspectable.
func (f *File) State() any {
	exists := f.Exists()

	f.mu.Lock()
	defer f.mu.Unlock()

	subscribers := 0
	for _, fns := range f.subs {
		subscribers += len(fns)
	}

	return FileState{
		Path:          f.path,
		Atomic:        f.config.Atomic,
		Exists:        exists,
		WatcherActive: f.watch != nil && f.watch.active(),
		Subscribers:   subscribers,
		EventStreams:  len(f.events),
		Closed:        f.closed,
	}
}

// ComponentType implements introspection.Component.
func (f *File) ComponentType() string {
	return "file"
}

var _ introspection.Introspectable = (*File)(nil)
var _ introspection.Component = (*File)(nil)
