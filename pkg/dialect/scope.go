package dialect

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/lenient/pkg/core"
)

// DefaultScopes maps the lenient scopes to the language they present.
func DefaultScopes() map[string]core.Language {
	return map[string]core.Language{
		core.ScopeLenientJS:   core.LanguageJS,
		core.ScopeLenientJSON: core.LanguageJSON,
	}
}

// LanguageOfScope derives the canonical language of any scope name.
func LanguageOfScope(scope string) core.Language {
	if strings.HasPrefix(scope, "source.json") {
		return core.LanguageJSON
	}
	return core.LanguageJS
}

// eligible reports whether a document at path may switch to lenient mode.
// Unsaved documents and empty pattern lists are always eligible.
func eligible(patterns []string, path string) bool {
	if path == "" || len(patterns) == 0 {
		return true
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, base); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, strings.TrimPrefix(slashed, "/")); ok {
			return true
		}
	}
	return false
}

func validatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return &PatternError{Pattern: pattern}
		}
	}
	return nil
}

// PatternError reports an invalid eligibility glob.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return "invalid path pattern: " + e.Pattern
}
