// Package converters provides the converter sets the pipeline transcodes with.
//
// Each language registers an immutable core.ConverterSet. The sets are pure
// and safe to share across documents and goroutines.
package converters

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/lenient/pkg/core"
)

// Registry implements core.Provider with a map of language tags.
type Registry struct {
	mu   sync.RWMutex
	sets map[core.Language]core.ConverterSet
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sets: make(map[core.Language]core.ConverterSet)}
}

// Default returns a registry with the JS and JSON converters.
func Default() *Registry {
	r := NewRegistry()
	r.Register(JavaScript())
	r.Register(JSON())
	return r
}

// Register adds or replaces the converters for set.Language.
func (r *Registry) Register(set core.ConverterSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[set.Language] = set
}

// Converters implements core.Provider.
func (r *Registry) Converters(lang core.Language) (core.ConverterSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[lang]
	if !ok {
		return core.ConverterSet{}, fmt.Errorf("%w: %q", core.ErrUnsupportedLanguage, lang)
	}
	return set, nil
}

// Languages returns the registered language tags, sorted.
func (r *Registry) Languages() []core.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]core.Language, 0, len(r.sets))
	for lang := range r.sets {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

var _ core.Provider = (*Registry)(nil)

// extensions maps file extensions to the language they are written in.
var extensions = map[string]core.Language{
	".js":   core.LanguageJS,
	".mjs":  core.LanguageJS,
	".cjs":  core.LanguageJS,
	".jsx":  core.LanguageJS,
	".json": core.LanguageJSON,
}

// LanguageForPath infers the language from a file extension.
func LanguageForPath(path string) (core.Language, bool) {
	lang, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}
