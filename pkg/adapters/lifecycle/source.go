// Package lifecycle bridges file handle events into aretw0/lifecycle
// sources, so supervisors and event routers can consume them.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/lenient/pkg/core"
)

type fileSource struct {
	events <-chan core.FileEvent
	accept map[core.FileEventType]bool
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the file events of the
// given types, or every event when no type is given.
func NewSource(events <-chan core.FileEvent, types ...core.FileEventType) lifecycle.Source {
	s := &fileSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	if len(types) > 0 {
		s.accept = make(map[core.FileEventType]bool, len(types))
		for _, t := range types {
			s.accept[t] = true
		}
	}
	return s
}

func (s *fileSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx is done or the upstream channel closes,
// then closes Events.
func (s *fileSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.accept != nil && !s.accept[e.Type] {
					continue
				}
				// core.FileEvent has String(), which is all lifecycle.Event asks for.
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
