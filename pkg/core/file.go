package core

import "io"

// File is the capability set of a host file handle.
// Adhering to this interface lets the pipeline wrap any backing store
// (disk, memory, remote) without knowing its concrete type.
type File interface {
	// Path returns the location of the backing store.
	Path() string

	// Exists reports whether the backing store currently exists.
	Exists() bool

	// CreateReadStream opens the content for reading.
	CreateReadStream() (io.ReadCloser, error)

	// CreateWriteStream opens the content for writing.
	// Hosts may truncate the destination as soon as it is opened.
	CreateWriteStream() (io.WriteCloser, error)

	// OnDidChange subscribes to content changes.
	OnDidChange(fn func()) Disposable

	// OnDidDelete subscribes to removal of the backing store.
	OnDidDelete(fn func()) Disposable

	// OnDidRename subscribes to moves of the backing store.
	OnDidRename(fn func()) Disposable
}
