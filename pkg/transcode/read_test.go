package transcode_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/lenient/pkg/transcode"
)

type trackingReader struct {
	io.Reader
	closed bool
}

func (r *trackingReader) Close() error {
	r.closed = true
	return nil
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }
func (brokenReader) Close() error             { return nil }

func TestReadThrough(t *testing.T) {
	t.Run("Converts Whole Content", func(t *testing.T) {
		src := &trackingReader{Reader: strings.NewReader("HELLO WORLD")}
		r := transcode.ReadThrough(src, lower)

		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(data))

		require.NoError(t, r.Close())
		assert.True(t, src.closed)
	})

	t.Run("Small Reads", func(t *testing.T) {
		r := transcode.ReadThrough(io.NopCloser(strings.NewReader("ABCDEF")), lower)
		p := make([]byte, 2)
		var got []byte
		for {
			n, err := r.Read(p)
			got = append(got, p[:n]...)
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
		}
		assert.Equal(t, "abcdef", string(got))
	})

	t.Run("Conversion Error Surfaces From Read", func(t *testing.T) {
		r := transcode.ReadThrough(io.NopCloser(strings.NewReader("x")), failing)
		_, err := io.ReadAll(r)
		assert.ErrorIs(t, err, errBoom)

		// The error is sticky.
		_, err = r.Read(make([]byte, 1))
		assert.ErrorIs(t, err, errBoom)
	})

	t.Run("Source Error Surfaces From Read", func(t *testing.T) {
		r := transcode.ReadThrough(brokenReader{}, lower)
		_, err := io.ReadAll(r)
		assert.EqualError(t, err, "disk on fire")
	})
}
