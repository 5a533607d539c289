package converters

import (
	"errors"
	"testing"

	"github.com/aretw0/lenient/pkg/core"
)

func TestRegistry(t *testing.T) {
	r := Default()

	langs := r.Languages()
	if len(langs) != 2 || langs[0] != core.LanguageJS || langs[1] != core.LanguageJSON {
		t.Fatalf("unexpected languages: %v", langs)
	}

	set, err := r.Converters(core.LanguageJSON)
	if err != nil {
		t.Fatalf("Converters failed: %v", err)
	}
	if set.Language != core.LanguageJSON || set.ToLenient == nil || set.ToCanonical == nil || set.LenientToLenient == nil {
		t.Errorf("incomplete converter set: %+v", set)
	}

	_, err = r.Converters("coffee")
	if !errors.Is(err, core.ErrUnsupportedLanguage) {
		t.Errorf("expected ErrUnsupportedLanguage, got %v", err)
	}

	r.Register(core.ConverterSet{Language: "coffee"})
	if _, err := r.Converters("coffee"); err != nil {
		t.Errorf("registered language not found: %v", err)
	}
}

func TestLanguageForPath(t *testing.T) {
	cases := map[string]core.Language{
		"a.js":          core.LanguageJS,
		"dir/b.MJS":     core.LanguageJS,
		"c.cjs":         core.LanguageJS,
		"d.jsx":         core.LanguageJS,
		"/tmp/pkg.json": core.LanguageJSON,
		"notes.md":      "",
		"no-extension":  "",
	}
	for path, want := range cases {
		got, ok := LanguageForPath(path)
		if ok != (want != "") || got != want {
			t.Errorf("%s: expected %q, got %q (%v)", path, want, got, ok)
		}
	}
}
