package dialect

import (
	"fmt"

	"github.com/aretw0/lenient/pkg/core"
)

// OutcomeKind tags the result of processing a grammar change.
type OutcomeKind int

const (
	// OutcomeNone means the grammar change required no transition.
	OutcomeNone OutcomeKind = iota
	// OutcomeEnabled means the document is now lenient.
	OutcomeEnabled
	// OutcomeDisabled means the document is canonical again. Err may still
	// be set when its unsaved text could not be converted back.
	OutcomeDisabled
	// OutcomeReverted means enabling failed. The document stays canonical
	// and the caller must restore Previous as the document's grammar.
	OutcomeReverted
	// OutcomeSkipped means the document's path is not eligible.
	OutcomeSkipped
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNone:
		return "none"
	case OutcomeEnabled:
		return "enabled"
	case OutcomeDisabled:
		return "disabled"
	case OutcomeReverted:
		return "reverted"
	case OutcomeSkipped:
		return "skipped"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of one grammar change.
type Outcome struct {
	Kind     OutcomeKind
	Language core.Language
	Previous core.Grammar
	Err      error
}

// MustRevert reports whether the caller has to restore Previous.
func (o Outcome) MustRevert() bool {
	return o.Kind == OutcomeReverted && !o.Previous.IsZero()
}
