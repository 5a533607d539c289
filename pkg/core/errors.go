package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrWriteFailure        = errors.New("write failed: content could not be converted")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNotLenient          = errors.New("document is not in lenient mode")
	ErrStreamClosed        = errors.New("stream already closed")
)

// ParseError is returned by converters when the input does not match the
// expected grammar. Line and Column are 1-based; zero means unknown.
type ParseError struct {
	Language Language
	Message  string
	Line     int
	Column   int
	Err      error
}

func (e *ParseError) Error() string {
	prefix := "parse error"
	if e.Language != "" {
		prefix = fmt.Sprintf("%s parse error", e.Language)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s at %d:%d: %s", prefix, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError reports whether err carries a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
