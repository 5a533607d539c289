// Package transcode converts document content between dialects on every
// path a document's text travels: disk reads, disk writes and in-memory
// replacement.
//
// Nothing here keeps state across calls. Each read, save or buffer rewrite
// is an independent all-or-nothing attempt.
package transcode

import (
	"fmt"
	"time"

	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/metrics"
)

// Direction names the way a conversion goes.
type Direction string

const (
	ToLenient   Direction = "to_lenient"
	ToCanonical Direction = "to_canonical"
)

// Convert runs fn on text. A panicking converter is reported as a
// *core.ParseError so callers only ever deal with returned errors.
func Convert(dir Direction, fn core.ConvertFunc, text string) (out string, err error) {
	start := time.Now()
	defer func() {
		if recovered := recover(); recovered != nil {
			out = ""
			err = &core.ParseError{Message: fmt.Sprintf("converter panic: %v", recovered)}
		}
		result := metrics.ResultOK
		if err != nil {
			result = metrics.ResultError
		}
		metrics.Conversions.WithLabelValues(string(dir), result).Inc()
		metrics.ConversionDuration.WithLabelValues(string(dir)).Observe(time.Since(start).Seconds())
	}()

	if fn == nil {
		return "", fmt.Errorf("%w: no converter for %s", core.ErrUnsupportedLanguage, dir)
	}
	return fn(text)
}
