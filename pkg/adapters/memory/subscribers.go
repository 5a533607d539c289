// Package memory implements the host collaborators in memory: file
// handles, editors and a workspace. It backs the CLI session commands and
// the tests of every other package.
package memory

import (
	"sync"

	"github.com/aretw0/lenient/pkg/core"
)

// subscribers is a set of callbacks that can be removed individually.
type subscribers[T any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(T)
}

func (s *subscribers[T]) add(fn func(T)) core.Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(T))
	}
	id := s.next
	s.next++
	s.fns[id] = fn

	return core.DisposableFunc(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.fns, id)
	})
}

// emit calls every callback outside the lock, in subscription order.
func (s *subscribers[T]) emit(v T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.fns))
	for id := 0; id < s.next; id++ {
		if fn, ok := s.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (s *subscribers[T]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}
