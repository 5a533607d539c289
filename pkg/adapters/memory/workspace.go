package memory

import (
	"sync"

	"github.com/aretw0/lenient/pkg/core"
)

// Workspace is an in-memory core.Workspace.
type Workspace struct {
	mu        sync.Mutex
	editors   []core.Editor
	unloading bool
	observers subscribers[core.Editor]
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Open adds an editor and notifies observers.
func (w *Workspace) Open(e core.Editor) {
	w.mu.Lock()
	w.editors = append(w.editors, e)
	w.mu.Unlock()
	w.observers.emit(e)
}

// Editors returns the open editors.
func (w *Workspace) Editors() []core.Editor {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]core.Editor(nil), w.editors...)
}

func (w *Workspace) ObserveEditors(fn func(core.Editor)) core.Disposable {
	d := w.observers.add(fn)
	for _, e := range w.Editors() {
		fn(e)
	}
	return d
}

// SetUnloading marks the host as shutting down entirely.
func (w *Workspace) SetUnloading(unloading bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unloading = unloading
}

func (w *Workspace) Unloading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.unloading
}

var _ core.Workspace = (*Workspace)(nil)
