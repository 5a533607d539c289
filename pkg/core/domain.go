// Package core defines the domain of the lenient transcoding pipeline.
//
// It models the host editor (documents, file handles, notifications) as
// interfaces, so the pipeline never depends on a concrete editor.
package core

// Language identifies the canonical language a converter set targets.
type Language string

const (
	LanguageJS   Language = "js"
	LanguageJSON Language = "json"
)

// Scope names understood out of the box.
const (
	ScopeLenientJS   = "source.js.lenient"
	ScopeLenientJSON = "source.json.lenient"
	ScopeJS          = "source.js"
	ScopeJSON        = "source.json"
)

// Grammar is the host's syntax definition currently attached to a document.
type Grammar struct {
	ScopeName string
	Name      string
}

// IsZero reports whether no grammar has been observed.
func (g Grammar) IsZero() bool {
	return g.ScopeName == "" && g.Name == ""
}

// LoadOptions is passed to Editor.Load when the pipeline forces a re-read.
type LoadOptions struct {
	// Internal marks reloads triggered by the pipeline rather than the user.
	Internal bool
}

// Disposable releases a subscription.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable.
type DisposableFunc func()

// Dispose calls f.
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// CompositeDisposable disposes a group of subscriptions at once.
type CompositeDisposable struct {
	items []Disposable
}

// Add registers subscriptions to be released together.
func (c *CompositeDisposable) Add(items ...Disposable) {
	c.items = append(c.items, items...)
}

// Dispose releases every registered subscription in reverse order.
func (c *CompositeDisposable) Dispose() {
	for i := len(c.items) - 1; i >= 0; i-- {
		if c.items[i] != nil {
			c.items[i].Dispose()
		}
	}
	c.items = nil
}

// FileEventType represents the kind of change observed on a file handle.
type FileEventType string

const (
	FileChanged FileEventType = "CHANGE"
	FileDeleted FileEventType = "DELETE"
	FileRenamed FileEventType = "RENAME"
)

// FileEvent represents a change on a file handle.
type FileEvent struct {
	Type      FileEventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e FileEvent) String() string {
	return string(e.Type) + " " + e.Path
}
