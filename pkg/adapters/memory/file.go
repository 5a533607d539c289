package memory

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/aretw0/lenient/pkg/core"
)

// File is an in-memory core.File. Like real hosts, it truncates its
// content as soon as a write stream is opened.
type File struct {
	mu         sync.Mutex
	path       string
	content    []byte
	exists     bool
	writeOpens int

	// ReadErr, when set, is returned by CreateReadStream.
	ReadErr error

	changed subscribers[struct{}]
	deleted subscribers[struct{}]
	renamed subscribers[struct{}]
}

// NewFile creates an existing file holding content.
func NewFile(path, content string) *File {
	return &File{path: path, content: []byte(content), exists: true}
}

func (f *File) Path() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.path
}

func (f *File) Exists() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists
}

// Content returns the stored bytes as a string.
func (f *File) Content() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.content)
}

// WriteOpens returns how many times a write stream was opened.
func (f *File) WriteOpens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeOpens
}

// SetContent replaces the content as an external process would.
func (f *File) SetContent(content string) {
	f.mu.Lock()
	f.content = []byte(content)
	f.exists = true
	f.mu.Unlock()
	f.changed.emit(struct{}{})
}

// Delete removes the file as an external process would.
func (f *File) Delete() {
	f.mu.Lock()
	f.exists = false
	f.content = nil
	f.mu.Unlock()
	f.deleted.emit(struct{}{})
}

// Rename moves the file as an external process would.
func (f *File) Rename(path string) {
	f.mu.Lock()
	f.path = path
	f.mu.Unlock()
	f.renamed.emit(struct{}{})
}

func (f *File) CreateReadStream() (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	if !f.exists {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(bytes.Clone(f.content))), nil
}

func (f *File) CreateWriteStream() (io.WriteCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.writeOpens++
	f.content = nil
	f.exists = true
	return &fileWriter{file: f}, nil
}

func (f *File) OnDidChange(fn func()) core.Disposable {
	return f.changed.add(func(struct{}) { fn() })
}

func (f *File) OnDidDelete(fn func()) core.Disposable {
	return f.deleted.add(func(struct{}) { fn() })
}

func (f *File) OnDidRename(fn func()) core.Disposable {
	return f.renamed.add(func(struct{}) { fn() })
}

type fileWriter struct {
	file   *File
	closed bool
}

func (w *fileWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, core.ErrStreamClosed
	}
	w.file.mu.Lock()
	w.file.content = append(w.file.content, p...)
	w.file.mu.Unlock()
	return len(p), nil
}

func (w *fileWriter) Close() error {
	if w.closed {
		return core.ErrStreamClosed
	}
	w.closed = true
	w.file.changed.emit(struct{}{})
	return nil
}

var _ core.File = (*File)(nil)
