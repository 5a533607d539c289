package platform

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/lenient/pkg/adapters/fs"
	"github.com/aretw0/lenient/pkg/adapters/memory"
	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/dialect"
)

func TestNew_Defaults(t *testing.T) {
	rt, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if rt.Subsystem == nil || rt.Provider == nil || rt.Notifier == nil || rt.Logger == nil {
		t.Fatalf("runtime not fully wired: %+v", rt)
	}
	if _, err := rt.Provider.Converters(core.LanguageJSON); err != nil {
		t.Errorf("default provider lacks JSON: %v", err)
	}
}

func TestNew_ExplicitOptionsWinOverFile(t *testing.T) {
	path := writeConfig(t, "paths:\n  - \"*.json\"\natomic_writes: false\n")

	rt, err := New(
		WithConfigFile(path),
		WithPaths("*.js"),
		WithAtomicWrites(true),
		WithScope("source.custom.lenient", core.LanguageJS),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(rt.Config.Paths) != 1 || rt.Config.Paths[0] != "*.js" {
		t.Errorf("expected explicit paths, got %v", rt.Config.Paths)
	}
	if !rt.Config.AtomicWrites {
		t.Error("expected explicit atomic writes")
	}
	if len(rt.Config.Scopes) != 1 || rt.Config.Scopes["source.custom.lenient"] != core.LanguageJS {
		t.Errorf("expected explicit scopes only, got %v", rt.Config.Scopes)
	}

	state := rt.Subsystem.State().(dialect.SubsystemState)
	if len(state.Scopes) != 1 || state.Scopes[0] != "source.custom.lenient" {
		t.Errorf("subsystem not built from merged config: %+v", state)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New(WithPaths("[")); err == nil {
		t.Error("expected invalid pattern error")
	}
}

func TestRuntime_Open(t *testing.T) {
	rt, err := New(WithAtomicWrites(true), WithNotifier(nil), WithProvider(nil))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	file, err := rt.Open(filepath.Join(t.TempDir(), "a.json"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer file.Close()

	state := file.State().(fs.FileState)
	if !state.Atomic {
		t.Error("expected the handle to use atomic writes")
	}
}

func TestRuntime_LenientSession(t *testing.T) {
	rt, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ws := memory.NewWorkspace()
	ed, _ := memory.NewEditor(memory.NewFile("/w/a.json", `{"a":1}`), core.Grammar{ScopeName: core.ScopeJSON})
	ws.Open(ed)
	if err := rt.Subsystem.Activate(ws); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	defer rt.Subsystem.Deactivate()

	ed.SetGrammar(core.Grammar{ScopeName: core.ScopeLenientJSON})
	if ed.Text() != "a: 1\n" {
		t.Errorf("expected lenient JSON, got %q", ed.Text())
	}
}
