// Package dialect owns the per-document dialect state machine.
//
// A Subsystem observes every document of a workspace. When a document's
// grammar switches to a lenient scope it attaches a mapped file handle and,
// for documents with unsaved edits, transcodes the buffer in place. When the
// grammar leaves the lenient scope it restores the original handle.
//
// Usage:
//
//	sub, err := dialect.New(dialect.Config{
//		Provider: converters.Default(),
//		Notifier: notify.NewCenter(logger),
//		Logger:   logger,
//	})
//	err = sub.Activate(workspace)
//	defer sub.Deactivate()
package dialect

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/lenient/pkg/core"
	"github.com/aretw0/lenient/pkg/metrics"
	"github.com/aretw0/lenient/pkg/notify"
	"github.com/aretw0/lenient/pkg/transcode"
)

// Config holds the configuration of a Subsystem.
type Config struct {
	Provider core.Provider
	Notifier core.Notifier
	Logger   *slog.Logger
	// Scopes maps lenient scope names to their language. Nil means DefaultScopes.
	Scopes map[string]core.Language
	// Paths restricts lenient mode to backed documents matching one of these
	// doublestar globs. Empty means every document is eligible.
	Paths []string
}

// Subsystem tracks the dialect of every observed document. Its side table
// is keyed by editor identity, so editors must be comparable (pointers).
type Subsystem struct {
	provider core.Provider
	policy   *notify.Policy
	logger   *slog.Logger
	scopes   map[string]core.Language
	paths    []string

	mu        sync.Mutex
	docs      map[core.Editor]*docState
	workspace core.Workspace
	subs      core.CompositeDisposable
	active    bool
}

type docState struct {
	id        string
	lenient   bool
	language  core.Language
	previous  core.Grammar
	reverting bool
	subs      core.CompositeDisposable
}

// New creates a Subsystem.
func New(cfg Config) (*Subsystem, error) {
	if cfg.Provider == nil {
		return nil, errors.New("dialect: converter provider is required")
	}
	if cfg.Notifier == nil {
		return nil, errors.New("dialect: notifier is required")
	}
	if err := validatePatterns(cfg.Paths); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	scopes := cfg.Scopes
	if scopes == nil {
		scopes = DefaultScopes()
	}

	return &Subsystem{
		provider: cfg.Provider,
		policy:   notify.NewPolicy(cfg.Notifier, logger),
		logger:   logger,
		scopes:   scopes,
		paths:    append([]string(nil), cfg.Paths...),
		docs:     make(map[core.Editor]*docState),
	}, nil
}

// Activate starts observing every present and future document of ws.
func (s *Subsystem) Activate(ws core.Workspace) error {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return errors.New("dialect: already active")
	}
	s.active = true
	s.workspace = ws
	s.mu.Unlock()

	sub := ws.ObserveEditors(s.Observe)

	s.mu.Lock()
	s.subs.Add(sub)
	s.mu.Unlock()

	s.logger.Debug("dialect subsystem activated")
	return nil
}

// Deactivate stops observing documents. Unless the host is unloading, every
// document still in lenient mode is reverted to canonical on a best-effort
// basis: failures are swallowed so deactivation always completes.
func (s *Subsystem) Deactivate() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	ws := s.workspace
	s.workspace = nil
	docs := s.docs
	s.docs = make(map[core.Editor]*docState)
	s.mu.Unlock()

	s.subs.Dispose()
	for _, st := range docs {
		st.subs.Dispose()
	}

	if ws != nil && ws.Unloading() {
		s.logger.Debug("host unloading, leaving documents as they are")
		metrics.Tracked.Set(0)
		return
	}

	for ed, st := range docs {
		if !st.lenient {
			continue
		}
		s.revertQuietly(ed, st)
	}
	metrics.Tracked.Set(0)
	s.logger.Debug("dialect subsystem deactivated")
}

func (s *Subsystem) revertQuietly(ed core.Editor, st *docState) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Warn("revert on deactivate panicked", "path", ed.Path(), "panic", recovered)
		}
		s.mu.Lock()
		st.lenient = false
		s.mu.Unlock()
	}()
	if out := s.disable(ed, st); out.Err != nil {
		s.logger.Warn("revert on deactivate failed", "path", ed.Path(), "error", out.Err)
	}
}

// Observe subscribes to the grammar and lifetime of one document.
func (s *Subsystem) Observe(ed core.Editor) {
	st := s.state(ed)

	grammarSub := ed.ObserveGrammar(func(g core.Grammar) {
		s.onGrammar(ed, g)
	})
	destroySub := ed.OnDidDestroy(func() {
		s.Forget(ed)
	})
	st.subs.Add(grammarSub, destroySub)
}

// Forget releases a closed document. Its dialect state is discarded without
// converting anything: the document is going away, not switching back.
func (s *Subsystem) Forget(ed core.Editor) {
	s.mu.Lock()
	st, ok := s.docs[ed]
	delete(s.docs, ed)
	s.mu.Unlock()

	if !ok {
		return
	}
	st.subs.Dispose()
	s.updateTracked()
}

// onGrammar applies the outcome of a grammar change, restoring the previous
// grammar when enabling failed.
func (s *Subsystem) onGrammar(ed core.Editor, g core.Grammar) {
	st := s.state(ed)
	out := s.HandleGrammar(ed, g)
	if !out.MustRevert() {
		return
	}
	if st.reverting {
		s.logger.Warn("grammar revert failed again, giving up", "path", ed.Path(), "error", out.Err)
		return
	}

	st.reverting = true
	defer func() { st.reverting = false }()
	s.logger.Debug("reverting grammar", "path", ed.Path(), "scope", out.Previous.ScopeName)
	ed.SetGrammar(out.Previous)
}

// HandleGrammar runs the state machine for one grammar change of ed. It
// never changes ed's grammar itself: on OutcomeReverted the caller restores
// Outcome.Previous.
func (s *Subsystem) HandleGrammar(ed core.Editor, g core.Grammar) Outcome {
	st := s.state(ed)
	lang, isLenientScope := s.scopes[g.ScopeName]

	var out Outcome
	switch {
	case st.lenient && isLenientScope && lang == st.language:
		out = Outcome{Kind: OutcomeNone, Language: lang}
	case st.lenient:
		out = s.disable(ed, st)
		if isLenientScope {
			// Switching between two lenient languages goes through canonical.
			out = s.enable(ed, st, lang)
		}
	case isLenientScope:
		out = s.enable(ed, st, lang)
	}

	if out.Kind != OutcomeReverted {
		st.previous = g
	}
	if out.Kind != OutcomeNone {
		metrics.Transitions.WithLabelValues(out.Kind.String()).Inc()
	}
	return out
}

// Enable switches ed to lenient mode for lang. See HandleGrammar for the
// meaning of the outcome.
func (s *Subsystem) Enable(ed core.Editor, lang core.Language) Outcome {
	st := s.state(ed)
	if st.lenient {
		return Outcome{Kind: OutcomeNone, Language: st.language}
	}
	return s.enable(ed, st, lang)
}

// Disable switches ed back to canonical mode. The document always ends up
// canonical; Outcome.Err reports a conversion failure of unsaved text.
func (s *Subsystem) Disable(ed core.Editor) Outcome {
	st := s.state(ed)
	if !st.lenient {
		return Outcome{Kind: OutcomeNone, Err: core.ErrNotLenient}
	}
	return s.disable(ed, st)
}

func (s *Subsystem) enable(ed core.Editor, st *docState, lang core.Language) Outcome {
	path := ed.Path()
	if !eligible(s.paths, path) {
		s.logger.Debug("path not eligible for lenient mode", "path", path)
		return Outcome{Kind: OutcomeSkipped, Language: lang}
	}

	source := st.source(path)
	set, err := s.provider.Converters(lang)
	if err != nil {
		s.policy.Report(notify.CouldNotConvertTo, source, err)
		return Outcome{Kind: OutcomeReverted, Language: lang, Previous: st.previous, Err: err}
	}

	backed := path != ""
	modified := ed.IsModified()

	var loadErr error
	var original core.File
	if backed {
		original = ed.File()
		ed.SetFile(transcode.NewMappedFile(original, set, transcode.WriteHooks{
			OnError:   s.policy.Reporter(notify.CouldNotSave, source),
			OnSuccess: func() { s.policy.SaveSucceeded(source) },
		}))
		if !modified {
			if loadErr = ed.Load(core.LoadOptions{Internal: true}); loadErr != nil {
				s.logger.Warn("reload in lenient mode failed", "path", path, "error", loadErr)
			}
		}
	}

	if modified {
		err := transcode.Text(ed, transcode.ToLenient, set.ToLenient, s.policy.Reporter(notify.CouldNotConvertTo, source))
		if err != nil {
			if backed {
				ed.SetFile(original)
			}
			s.logger.Debug("lenient mode aborted", "path", path, "error", err)
			return Outcome{Kind: OutcomeReverted, Language: lang, Previous: st.previous, Err: err}
		}
	}

	s.mu.Lock()
	st.lenient = true
	st.language = lang
	s.mu.Unlock()
	s.updateTracked()

	s.logger.Debug("lenient mode enabled", "path", path, "language", lang, "modified", modified)
	return Outcome{Kind: OutcomeEnabled, Language: lang, Err: loadErr}
}

func (s *Subsystem) disable(ed core.Editor, st *docState) Outcome {
	path := ed.Path()
	lang := st.language
	backed := path != ""
	modified := ed.IsModified()

	var err error
	if backed {
		if original, ok := transcode.Original(ed.File()); ok {
			ed.SetFile(original)
		}
		if !modified {
			if err = ed.Load(core.LoadOptions{Internal: true}); err != nil {
				s.logger.Warn("reload in canonical mode failed", "path", path, "error", err)
			}
		}
	}

	if modified {
		report := s.policy.Reporter(notify.CouldNotConvertFrom, st.source(path))
		set, cerr := s.provider.Converters(lang)
		if cerr != nil {
			report(cerr)
			err = cerr
		} else {
			err = transcode.Text(ed, transcode.ToCanonical, set.ToCanonical, report)
		}
	}

	// The flag is cleared even when conversion failed: a document must never
	// stay lenient after its grammar left the lenient scope.
	s.mu.Lock()
	st.lenient = false
	s.mu.Unlock()
	s.updateTracked()

	s.logger.Debug("lenient mode disabled", "path", path, "language", lang, "modified", modified)
	return Outcome{Kind: OutcomeDisabled, Language: lang, Err: err}
}

// IsLenient reports whether ed is currently presented in the lenient dialect.
func (s *Subsystem) IsLenient(ed core.Editor) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.docs[ed]
	return ok && st.lenient
}

// Tracked returns the paths of the documents currently in lenient mode.
// Unsaved documents are listed by their untitled source key.
func (s *Subsystem) Tracked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tracked []string
	for ed, st := range s.docs {
		if st.lenient {
			tracked = append(tracked, st.source(ed.Path()))
		}
	}
	sort.Strings(tracked)
	return tracked
}

func (s *Subsystem) state(ed core.Editor) *docState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.docs[ed]
	if !ok {
		st = &docState{id: uuid.NewString()}
		s.docs[ed] = st
	}
	return st
}

func (s *Subsystem) updateTracked() {
	s.mu.Lock()
	n := 0
	for _, st := range s.docs {
		if st.lenient {
			n++
		}
	}
	s.mu.Unlock()
	metrics.Tracked.Set(float64(n))
}

// source is the key notifications about the document are filed under.
func (st *docState) source(path string) string {
	if path != "" {
		return path
	}
	return fmt.Sprintf("untitled:%s", st.id)
}
