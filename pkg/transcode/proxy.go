package transcode

import (
	"io"

	"github.com/aretw0/lenient/pkg/core"
)

// MappedFile is a forwarding facade over an original handle. Every
// capability is delegated to the original except the two stream
// constructors, which convert on the way in and out.
//
// It does not embed the original: hosts that special-case their own
// concrete handle types must not recognise it and bypass the streams.
type MappedFile struct {
	original core.File
	set      core.ConverterSet
	hooks    WriteHooks
}

// NewMappedFile wraps original. Wrapping a MappedFile wraps its original
// instead, so the back-reference always points at the raw handle.
func NewMappedFile(original core.File, set core.ConverterSet, hooks WriteHooks) *MappedFile {
	if m, ok := original.(*MappedFile); ok {
		original = m.original
	}
	return &MappedFile{original: original, set: set, hooks: hooks}
}

// Original returns the handle f maps, or f itself when it is not mapped.
func Original(f core.File) (core.File, bool) {
	m, ok := f.(*MappedFile)
	if !ok {
		return f, false
	}
	return m.original, true
}

// IsMapped reports whether f is a mapped handle.
func IsMapped(f core.File) bool {
	_, ok := f.(*MappedFile)
	return ok
}

// Language returns the language the handle converts.
func (m *MappedFile) Language() core.Language {
	return m.set.Language
}

func (m *MappedFile) Path() string { return m.original.Path() }

func (m *MappedFile) Exists() bool { return m.original.Exists() }

func (m *MappedFile) OnDidChange(fn func()) core.Disposable { return m.original.OnDidChange(fn) }

func (m *MappedFile) OnDidDelete(fn func()) core.Disposable { return m.original.OnDidDelete(fn) }

func (m *MappedFile) OnDidRename(fn func()) core.Disposable { return m.original.OnDidRename(fn) }

// CreateReadStream presents the canonical content in the lenient dialect.
func (m *MappedFile) CreateReadStream() (io.ReadCloser, error) {
	source, err := m.original.CreateReadStream()
	if err != nil {
		return nil, err
	}
	return ReadThrough(source, m.set.ToLenient), nil
}

// CreateWriteStream persists lenient content in the canonical dialect.
// The original's write stream is only opened once conversion succeeded.
func (m *MappedFile) CreateWriteStream() (io.WriteCloser, error) {
	return WriteThrough(m.original.CreateWriteStream, m.set.ToCanonical, m.hooks), nil
}

var _ core.File = (*MappedFile)(nil)
