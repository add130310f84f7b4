// Package survey holds the in-progress answers of one questionnaire run.
//
// All transitions go through Reduce, which never modifies its input: every
// update builds a new question slice holding a new question value, so a
// slice handed to a reader stays valid after later dispatches.
package survey

import (
	"fmt"
	"slices"

	"github.com/terappia/terapp/internal/question"
)

// Phase is the lifecycle phase of a survey.
type Phase int

const (
	PhaseLoading Phase = iota // Waiting for the question list
	PhaseReady                // Questions loaded, accepting responses
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the survey container: the ordered questions and their responses.
type State struct {
	Phase     Phase
	Questions []question.Question
}

// Action is a named state transition.
type Action interface {
	isAction()
}

// SaveFetch replaces the question list with a freshly loaded one.
type SaveFetch struct {
	Questions []question.Question
}

// UpdateResponse sets the response of the question with QuestionID.
type UpdateResponse struct {
	QuestionID string
	Response   any
}

func (SaveFetch) isAction()      {}
func (UpdateResponse) isAction() {}

// InvalidResponseError is returned when a response is rejected by its question.
type InvalidResponseError struct {
	QuestionID string
	Err        error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("question %q: %v", e.QuestionID, e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// Reduce applies a to s and returns the next state. An update for an
// unknown question id returns s unchanged and no error. A rejected value
// returns s unchanged together with an *InvalidResponseError.
func Reduce(s State, a Action) (State, error) {
	switch a := a.(type) {
	case SaveFetch:
		return State{Phase: PhaseReady, Questions: slices.Clone(a.Questions)}, nil

	case UpdateResponse:
		idx := slices.IndexFunc(s.Questions, func(q question.Question) bool {
			return q.ID() == a.QuestionID
		})
		if idx < 0 {
			return s, nil
		}
		updated, err := s.Questions[idx].WithResponse(a.Response)
		if err != nil {
			return s, &InvalidResponseError{QuestionID: a.QuestionID, Err: err}
		}
		next := slices.Clone(s.Questions)
		next[idx] = updated
		return State{Phase: s.Phase, Questions: next}, nil

	default:
		return s, fmt.Errorf("unknown survey action %T", a)
	}
}
