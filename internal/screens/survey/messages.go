package survey

import (
	"github.com/terappia/terapp/internal/repository"
)

// questionsLoadedMsg is sent when the question fetch resolves. Applied is
// false when the session was closed first and the list was discarded.
type questionsLoadedMsg struct {
	Applied bool
}

// feedbackMsg is sent when the prediction request completes.
type feedbackMsg struct {
	Prediction *repository.Prediction
	Err        error
}
