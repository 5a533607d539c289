package transcode

import "github.com/aretw0/lenient/pkg/core"

// TextBuffer is the part of a document the in-memory transcoder touches.
type TextBuffer interface {
	Text() string
	SetText(text string)
}

// Text replaces the whole content of buf with its conversion. On failure
// buf is left untouched, onError is called and the error is returned so
// the caller can treat the surrounding switch as not having happened.
func Text(buf TextBuffer, dir Direction, fn core.ConvertFunc, onError func(error)) error {
	converted, err := Convert(dir, fn, buf.Text())
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return err
	}
	buf.SetText(converted)
	return nil
}
