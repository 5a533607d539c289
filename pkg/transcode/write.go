package transcode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/metrics"
)

// WriteHooks are notified of the outcome of a transactional write.
type WriteHooks struct {
	// OnError receives conversion or storage failures.
	OnError func(error)
	// OnSuccess runs once the converted content is fully persisted.
	OnSuccess func()
}

func (h WriteHooks) fail(err error) {
	metrics.Saves.WithLabelValues(metrics.ResultError).Inc()
	if h.OnError != nil {
		h.OnError(err)
	}
}

func (h WriteHooks) succeed() {
	metrics.Saves.WithLabelValues(metrics.ResultOK).Inc()
	if h.OnSuccess != nil {
		h.OnSuccess()
	}
}

type writeThrough struct {
	open   func() (io.WriteCloser, error)
	fn     core.ConvertFunc
	hooks  WriteHooks
	buf    bytes.Buffer
	closed bool
}

// WriteThrough returns a stream that collects everything written to it and
// converts it with fn on Close, before open is ever called. Hosts truncate
// the destination when they open it for writing, so a failed conversion
// must never reach open: the destination stays byte-identical and Close
// returns an error wrapping core.ErrWriteFailure.
func WriteThrough(open func() (io.WriteCloser, error), fn core.ConvertFunc, hooks WriteHooks) io.WriteCloser {
	return &writeThrough{open: open, fn: fn, hooks: hooks}
}

func (w *writeThrough) Write(p []byte) (int, error) {
	if w.closed {
		return 0, core.ErrStreamClosed
	}
	return w.buf.Write(p)
}

func (w *writeThrough) Close() error {
	if w.closed {
		return core.ErrStreamClosed
	}
	w.closed = true

	converted, err := Convert(ToCanonical, w.fn, w.buf.String())
	if err != nil {
		w.hooks.fail(err)
		return fmt.Errorf("%w: %w", core.ErrWriteFailure, err)
	}

	// Conversion succeeded, so it is now safe to open the destination.
	dst, err := w.open()
	if err != nil {
		err = fmt.Errorf("failed to open destination: %w", err)
		w.hooks.fail(err)
		return err
	}
	if _, err := io.WriteString(dst, converted); err != nil {
		_ = dst.Close()
		err = fmt.Errorf("failed to write destination: %w", err)
		w.hooks.fail(err)
		return err
	}
	if err := dst.Close(); err != nil {
		err = fmt.Errorf("failed to close destination: %w", err)
		w.hooks.fail(err)
		return err
	}

	w.hooks.succeed()
	return nil
}
