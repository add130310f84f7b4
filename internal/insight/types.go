// Package insight turns a prediction into a short, plain-language reading
// written by an LLM provider.
package insight

import (
	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/repository"
)

// Disclaimer is appended to every insight regardless of what the model wrote.
const Disclaimer = "O Terapp.ia não substitui acompanhamento médico ou psicológico. " +
	"Ele é apenas uma ferramenta de apoio e conscientização."

// Insight is the generated reading of one survey result.
type Insight struct {
	Summary     string
	Highlights  []string
	Suggestions []string
	Disclaimer  string
}

// Answer is a question title paired with the displayed response.
type Answer struct {
	Question string
	Answer   string
}

// Input is everything the prompt is built from.
type Input struct {
	Prediction *repository.Prediction
	Answers    []Answer
}

// NewInput collects the answered questions of a survey, in order.
func NewInput(p *repository.Prediction, qs []question.Question) Input {
	in := Input{Prediction: p}
	for _, q := range qs {
		a := question.FormatResponse(q)
		if a == "" {
			continue
		}
		in.Answers = append(in.Answers, Answer{Question: q.Title(), Answer: a})
	}
	return in
}
