package main

import (
	"fmt"

	"github.com/aretw0/lenient/pkg/converters"
	"github.com/aretw0/lenient/pkg/core"
)

// resolveLanguage prefers the --lang flag and falls back to the extension.
func resolveLanguage(flag, path string) (core.Language, error) {
	if flag != "" {
		return core.Language(flag), nil
	}
	lang, ok := converters.LanguageForPath(path)
	if !ok {
		return "", fmt.Errorf("cannot infer language of %s, use --lang", path)
	}
	return lang, nil
}
