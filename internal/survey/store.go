package survey

import (
	"slices"
	"sync"

	"github.com/terappia/terapp/internal/question"
)

// Store owns the state of one survey and is its only writer.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store in the loading phase.
func NewStore() *Store {
	return &Store{state: State{Phase: PhaseLoading}}
}

// Dispatch reduces a into the current state.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// State returns the current state. The returned slice is never modified by
// later dispatches.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Phase returns the current phase.
func (s *Store) Phase() Phase {
	return s.State().Phase
}

// Questions returns a copy of the ordered question list.
func (s *Store) Questions() []question.Question {
	return slices.Clone(s.State().Questions)
}

// Question looks up a question by id.
func (s *Store) Question(id string) (question.Question, bool) {
	for _, q := range s.State().Questions {
		if q.ID() == id {
			return q, true
		}
	}
	return nil, false
}

// Responses returns id → response for every answered question.
func (s *Store) Responses() map[string]any {
	qs := s.State().Questions
	out := make(map[string]any, len(qs))
	for _, q := range qs {
		if v, ok := q.Response(); ok {
			out[q.ID()] = v
		}
	}
	return out
}

// Missing returns the ids of unanswered questions, in survey order.
func (s *Store) Missing() []string {
	var ids []string
	for _, q := range s.State().Questions {
		if _, ok := q.Response(); !ok {
			ids = append(ids, q.ID())
		}
	}
	return ids
}

// Answered returns how many questions have a response.
func (s *Store) Answered() int {
	n := 0
	for _, q := range s.State().Questions {
		if _, ok := q.Response(); ok {
			n++
		}
	}
	return n
}
