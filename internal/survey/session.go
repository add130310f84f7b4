package survey

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/terappia/terapp/internal/question"
)

// ErrIncomplete is returned when a survey is submitted with unanswered questions.
var ErrIncomplete = errors.New("survey has unanswered questions")

// Source supplies the question list for a survey.
type Source interface {
	GetQuestions(ctx context.Context) []question.Question
}

// Session is one lifetime of a survey, from load to teardown.
type Session struct {
	ID    string
	Store *Store

	// mu orders Close against Apply so a closed session never receives
	// a question list.
	mu     sync.Mutex
	active bool
}

// NewSession starts an active session with an empty store.
func NewSession() *Session {
	return &Session{ID: uuid.New().String(), Store: NewStore(), active: true}
}

// Active reports whether the session has not been closed.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Close ends the session. Loads still in flight are discarded when they
// complete.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Load fetches the question list and saves it into the store. It reports
// false when the session was closed before the fetch resolved, in which case
// the store is left untouched.
func (s *Session) Load(ctx context.Context, src Source) bool {
	qs := src.GetQuestions(ctx)
	return s.Apply(qs)
}

// Apply saves an already fetched question list if the session is still
// active.
func (s *Session) Apply(qs []question.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}
	// SaveFetch cannot fail.
	_ = s.Store.Dispatch(SaveFetch{Questions: qs})
	return true
}

// Submission returns the responses ready to send, or ErrIncomplete when some
// question is unanswered.
func (s *Session) Submission() (map[string]any, error) {
	if missing := s.Store.Missing(); len(missing) > 0 {
		return nil, ErrIncomplete
	}
	return s.Store.Responses(), nil
}
