package transcode_test

import (
	"errors"
	"strings"

	"github.com/aretw0/lenient/pkg/core"
)

var errBoom = errors.New("boom")

func upper(s string) (string, error) { return strings.ToUpper(s), nil }

func lower(s string) (string, error) { return strings.ToLower(s), nil }

func failing(string) (string, error) { return "", errBoom }

func panicking(string) (string, error) { panic("converter bug") }

func caseSet() core.ConverterSet {
	return core.ConverterSet{Language: "case", ToLenient: lower, ToCanonical: upper, LenientToLenient: lower}
}

type buffer struct{ text string }

func (b *buffer) Text() string     { return b.text }
func (b *buffer) SetText(t string) { b.text = t }
