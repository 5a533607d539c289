package core

// ConvertFunc transforms a whole document from one dialect to another.
// Implementations must be pure and fail with *ParseError on malformed input.
type ConvertFunc func(text string) (string, error)

// ConverterSet is the immutable triple of converters for one language.
type ConverterSet struct {
	Language         Language
	ToLenient        ConvertFunc
	ToCanonical      ConvertFunc
	LenientToLenient ConvertFunc
}

// Provider returns the converters for a language tag.
type Provider interface {
	// Converters returns ErrUnsupportedLanguage for unknown tags.
	Converters(lang Language) (ConverterSet, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(lang Language) (ConverterSet, error)

// Converters calls f.
func (f ProviderFunc) Converters(lang Language) (ConverterSet, error) {
	return f(lang)
}
