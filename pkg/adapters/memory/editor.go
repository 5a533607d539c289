package memory

import (
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/lenient/pkg/core"
)

// Editor is an in-memory core.Editor. Grammar observers run synchronously
// on SetGrammar, the way a single-threaded host delivers them.
type Editor struct {
	mu        sync.Mutex
	text      string
	modified  bool
	grammar   core.Grammar
	file      core.File
	loads     []core.LoadOptions
	destroyed bool

	grammarObservers subscribers[core.Grammar]
	destroyObservers subscribers[struct{}]
}

// NewEditor opens file with grammar. A nil file models an unsaved buffer.
// The initial text is read from file when it exists.
func NewEditor(file core.File, grammar core.Grammar) (*Editor, error) {
	e := &Editor{file: file, grammar: grammar}
	if file != nil && file.Exists() {
		text, err := readAll(file)
		if err != nil {
			return nil, err
		}
		e.text = text
	}
	return e, nil
}

func (e *Editor) Path() string {
	e.mu.Lock()
	file := e.file
	e.mu.Unlock()
	if file == nil {
		return ""
	}
	return file.Path()
}

func (e *Editor) IsModified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modified
}

func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.text
}

// SetText replaces the buffer and marks it modified.
func (e *Editor) SetText(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	e.modified = true
}

func (e *Editor) Grammar() core.Grammar {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grammar
}

// SetGrammar assigns g and notifies grammar observers.
func (e *Editor) SetGrammar(g core.Grammar) {
	e.mu.Lock()
	e.grammar = g
	e.mu.Unlock()
	e.grammarObservers.emit(g)
}

func (e *Editor) File() core.File {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.file
}

func (e *Editor) SetFile(f core.File) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.file = f
}

// Load re-reads the buffer from the attached file. On failure the buffer
// keeps its content.
func (e *Editor) Load(opts core.LoadOptions) error {
	e.mu.Lock()
	e.loads = append(e.loads, opts)
	file := e.file
	e.mu.Unlock()

	if file == nil {
		return fmt.Errorf("cannot load: buffer has no file")
	}
	text, err := readAll(file)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", file.Path(), err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.text = text
	e.modified = false
	return nil
}

// Loads returns the options of every Load call so far.
func (e *Editor) Loads() []core.LoadOptions {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.LoadOptions(nil), e.loads...)
}

// Save writes the buffer through the attached file. The buffer stays
// modified when the write fails.
func (e *Editor) Save() error {
	e.mu.Lock()
	file, text := e.file, e.text
	e.mu.Unlock()

	if file == nil {
		return fmt.Errorf("cannot save: buffer has no file")
	}
	w, err := file.CreateWriteStream()
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", file.Path(), err)
	}
	if _, err := io.WriteString(w, text); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write %s: %w", file.Path(), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to save %s: %w", file.Path(), err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.modified = false
	return nil
}

func (e *Editor) ObserveGrammar(fn func(core.Grammar)) core.Disposable {
	d := e.grammarObservers.add(fn)
	fn(e.Grammar())
	return d
}

func (e *Editor) OnDidDestroy(fn func()) core.Disposable {
	return e.destroyObservers.add(func(struct{}) { fn() })
}

// Destroy closes the editor and notifies destroy observers once.
func (e *Editor) Destroy() {
	e.mu.Lock()
	if e.destroyed {
		e.mu.Unlock()
		return
	}
	e.destroyed = true
	e.mu.Unlock()
	e.destroyObservers.emit(struct{}{})
}

// GrammarObservers returns the number of live grammar subscriptions.
func (e *Editor) GrammarObservers() int {
	return e.grammarObservers.len()
}

func readAll(file core.File) (string, error) {
	r, err := file.CreateReadStream()
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ core.Editor = (*Editor)(nil)
