package core

// Editor is one open, editable document as exposed by the host.
type Editor interface {
	// Path returns the backing path, or "" for unsaved documents.
	Path() string

	// IsModified reports unsaved changes.
	IsModified() bool

	Text() string
	SetText(text string)

	Grammar() Grammar
	SetGrammar(g Grammar)

	// File returns the handle currently attached to the document's buffer.
	File() File

	// SetFile attaches a new handle to the document's buffer.
	SetFile(f File)

	// Load re-reads the content from the attached handle.
	Load(opts LoadOptions) error

	// Save writes the content through the attached handle.
	Save() error

	// ObserveGrammar calls fn with the current grammar and on every change.
	ObserveGrammar(fn func(Grammar)) Disposable

	// OnDidDestroy calls fn when the document is closed.
	OnDidDestroy(fn func()) Disposable
}

// Workspace is the host's collection of open documents.
type Workspace interface {
	// ObserveEditors calls fn for every present and future document.
	ObserveEditors(fn func(Editor)) Disposable

	// Unloading reports whether the host is shutting down entirely.
	Unloading() bool
}
