package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/lenient/pkg/core"
)

const (
	// TempFilePrefix is the prefix used for temporary atomic write files.
	TempFilePrefix = ".lenient-tmp-"
)

// writeFileAtomic writes data to a file atomically by writing to a temp file
// and then renaming it to the target filename.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)

	// Same directory, so the rename never crosses filesystems.
	tmpFile, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name()) // no-op once renamed

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", filename, err)
	}

	return nil
}

// atomicWriter buffers a whole save and commits it with writeFileAtomic on
// Close. Until then the destination is untouched.
type atomicWriter struct {
	filename string
	perm     os.FileMode
	buf      bytes.Buffer
	closed   bool
}

func (w *atomicWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, core.ErrStreamClosed
	}
	return w.buf.Write(p)
}

func (w *atomicWriter) Close() error {
	if w.closed {
		return core.ErrStreamClosed
	}
	w.closed = true
	return writeFileAtomic(w.filename, w.buf.Bytes(), w.perm)
}
