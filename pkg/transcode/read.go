package transcode

import (
	"bytes"
	"io"

	"github.com/aretw0/lenient/pkg/core"
)

type readThrough struct {
	source io.ReadCloser
	fn     core.ConvertFunc
	out    *bytes.Reader
	err    error
}

// ReadThrough wraps source so whatever it yields reaches the consumer
// converted by fn. The content is converted as a single chunk the first
// time it is read. A conversion failure is returned from Read, so the
// consumer's own read-failure path reports it.
func ReadThrough(source io.ReadCloser, fn core.ConvertFunc) io.ReadCloser {
	return &readThrough{source: source, fn: fn}
}

func (r *readThrough) Read(p []byte) (int, error) {
	if r.out == nil && r.err == nil {
		r.fill()
	}
	if r.err != nil {
		return 0, r.err
	}
	return r.out.Read(p)
}

func (r *readThrough) fill() {
	data, err := io.ReadAll(r.source)
	if err != nil {
		r.err = err
		return
	}
	converted, err := Convert(ToLenient, r.fn, string(data))
	if err != nil {
		r.err = err
		return
	}
	r.out = bytes.NewReader([]byte(converted))
}

func (r *readThrough) Close() error {
	return r.source.Close()
}
