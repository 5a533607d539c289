package dialect

import (
	"sort"

	"github.com/aretw0/introspection"
)

// SubsystemState exposes internal state for observability.
type SubsystemState struct {
	Active    bool     `json:"active"`
	Documents int      `json:"documents"`
	Lenient   []string `json:"lenient,omitempty"`
	Scopes    []string `json:"scopes"`
	Paths     []string `json:"paths,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Subsystem) State() any {
	lenient := s.Tracked()

	s.mu.Lock()
	defer s.mu.Unlock()

	scopes := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	return SubsystemState{
		Active:    s.active,
		Documents: len(s.docs),
		Lenient:   lenient,
		Scopes:    scopes,
		Paths:     s.paths,
	}
}

// ComponentType implements introspection.Component.
func (s *Subsystem) ComponentType() string {
	return "dialect"
}

var _ introspection.Introspectable = (*Subsystem)(nil)
var _ introspection.Component = (*Subsystem)(nil)
