package converters

import (
	"testing"

	"github.com/aretw0/lenient/pkg/core"
)

func TestJavaScript_ToLenient(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Declarations",
			in:   "let x = 1;\nconst y = 2;\n",
			want: "let x = 1\nconst y = 2\n",
		},
		{
			name: "Nested Statements",
			in:   "function f() {\n  return 1;\n}\n",
			want: "function f() {\n  return 1\n}\n",
		},
		{
			name: "Loop Header Is Untouched",
			in:   "for (let i = 0; i < 3; i++) {\n  x(i);\n}\n",
			want: "for (let i = 0; i < 3; i++) {\n  x(i)\n}\n",
		},
		{
			name: "Hazardous Next Line Keeps Semicolon",
			in:   "a = b;\n[1, 2].forEach(f);\n",
			want: "a = b;\n[1, 2].forEach(f)\n",
		},
		{
			name: "Statements Sharing A Line",
			in:   "a(); b();\n",
			want: "a(); b()\n",
		},
		{
			name: "Trailing Comment",
			in:   "run(); // go\n",
			want: "run() // go\n",
		},
		{
			name: "Export Declaration",
			in:   "export const a = 1;\nexport default a;\n",
			want: "export const a = 1\nexport default a\n",
		},
		{
			name: "Class Field",
			in:   "class A {\n  x = 1;\n}\n",
			want: "class A {\n  x = 1\n}\n",
		},
	}

	set := JavaScript()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := set.ToLenient(c.in)
			if err != nil {
				t.Fatalf("ToLenient failed: %v", err)
			}
			if got != c.want {
				t.Errorf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestJavaScript_ToCanonical(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Declarations",
			in:   "let x = 1\nconst y = 2\n",
			want: "let x = 1;\nconst y = 2;\n",
		},
		{
			name: "Already Terminated",
			in:   "let x = 1;\n",
			want: "let x = 1;\n",
		},
		{
			name: "Nested Statements",
			in:   "function f() {\n  return 1\n}\n",
			want: "function f() {\n  return 1;\n}\n",
		},
		{
			name: "Export Declaration",
			in:   "export const a = 1\n",
			want: "export const a = 1;\n",
		},
	}

	set := JavaScript()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := set.ToCanonical(c.in)
			if err != nil {
				t.Fatalf("ToCanonical failed: %v", err)
			}
			if got != c.want {
				t.Errorf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func TestJavaScript_RoundTrip(t *testing.T) {
	set := JavaScript()
	src := "import { a } from \"./a.js\";\n\nconst xs = [1, 2, 3];\nlet total = 0;\nfor (const x of xs) {\n  total += x;\n}\nif (total > 3) {\n  console.log(total);\n}\nexport default total;\n"

	first, err := set.ToLenient(src)
	if err != nil {
		t.Fatalf("ToLenient failed: %v", err)
	}
	canonical, err := set.ToCanonical(first)
	if err != nil {
		t.Fatalf("ToCanonical failed: %v", err)
	}
	if canonical != src {
		t.Errorf("round trip changed the source:\n%s\n->\n%s", src, canonical)
	}

	again, err := set.LenientToLenient(first)
	if err != nil {
		t.Fatalf("LenientToLenient failed: %v", err)
	}
	if again != first {
		t.Errorf("LenientToLenient is not idempotent:\n%s\n->\n%s", first, again)
	}
}

func TestJavaScript_SyntaxError(t *testing.T) {
	set := JavaScript()
	for _, in := range []string{"let = ;\n", "function (\n"} {
		_, err := set.ToLenient(in)
		if err == nil {
			t.Fatalf("expected error for %q", in)
		}
		pe, ok := err.(*core.ParseError)
		if !ok {
			t.Fatalf("expected *core.ParseError, got %T", err)
		}
		if pe.Language != core.LanguageJS || pe.Line < 1 {
			t.Errorf("unexpected parse error for %q: %+v", in, pe)
		}
	}
}
