package survey

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/insight"
	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/repository"
	"github.com/terappia/terapp/internal/router"
	"github.com/terappia/terapp/internal/screen"
	"github.com/terappia/terapp/internal/screens/notice"
	"github.com/terappia/terapp/internal/screens/result"
	"github.com/terappia/terapp/internal/store"
	"github.com/terappia/terapp/internal/survey"
	"github.com/terappia/terapp/internal/ui/layout"
)

// Options are the collaborators of a survey screen.
type Options struct {
	Source repository.QuestionSource
	// Feedback submits the answers. When nil it is taken from Source.
	Feedback repository.FeedbackRequester
	// EventRepo records the session lifecycle. Optional.
	EventRepo store.EventRepo
	// Insight explains the prediction on the result screen. Optional.
	Insight        *insight.Service
	InsightTimeout time.Duration
}

// SurveyScreen runs one survey session: load, answer, review, submit.
type SurveyScreen struct {
	opts    Options
	session *survey.Session
	ctx     context.Context
	cancel  context.CancelFunc

	loaded      bool
	index       int
	control     control
	reviewing   bool
	confirmQuit bool
	submitting  bool
	submitted   bool
	errMsg      string
}

var _ screen.Screen = (*SurveyScreen)(nil)
var _ screen.KeyHintProvider = (*SurveyScreen)(nil)
var _ screen.StatusProvider = (*SurveyScreen)(nil)
var _ screen.Closer = (*SurveyScreen)(nil)
var _ screen.BackInterceptor = (*SurveyScreen)(nil)

// New creates a survey screen with a fresh session.
func New(opts Options) *SurveyScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &SurveyScreen{
		opts:    opts,
		session: survey.NewSession(),
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *SurveyScreen) Init() tea.Cmd {
	ctx, src, session := s.ctx, s.opts.Source, s.session
	return func() tea.Msg {
		return questionsLoadedMsg{Applied: session.Load(ctx, src)}
	}
}

func (s *SurveyScreen) Title() string {
	return "Survey"
}

// Close tears the session down. A load still in flight is discarded.
func (s *SurveyScreen) Close() {
	if !s.session.Active() {
		return
	}
	s.cancel()
	s.session.Close()
	if s.loaded && !s.submitted {
		s.recordEvent(context.Background(), store.SurveyAbandon)
	}
}

// InterceptBack keeps Esc inside the screen while answers would be lost.
func (s *SurveyScreen) InterceptBack() bool {
	return s.confirmQuit || s.reviewing || s.submitting || s.session.Store.Answered() > 0
}

func (s *SurveyScreen) Status() layout.Status {
	if !s.loaded {
		return layout.Status{}
	}
	return layout.Status{
		Answered: s.session.Store.Answered(),
		Total:    len(s.session.Store.Questions()),
	}
}

func (s *SurveyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep answering"},
		}
	case s.submitting || !s.loaded:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case s.questionCount() == 0:
		return []layout.KeyHint{
			{Key: "R", Description: "Reload"},
			{Key: "Esc", Description: "Back"},
		}
	case s.reviewing:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Shift+Tab", Description: "Edit answers"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Confirm"},
		{Key: "Tab/Shift+Tab", Description: "Next/Prev"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *SurveyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleLoaded(msg)
	case feedbackMsg:
		return s.handleFeedback(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.control != nil && !s.reviewing && !s.confirmQuit {
		var cmd tea.Cmd
		s.control, cmd = s.control.update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SurveyScreen) handleLoaded(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	if !msg.Applied || !s.session.Active() {
		return s, nil
	}
	s.loaded = true
	qs := s.session.Store.Questions()
	if len(qs) == 0 {
		return s, nil
	}
	s.index = 0
	s.control = newControl(qs[0])

	ctx := s.ctx
	return s, func() tea.Msg {
		s.recordEvent(ctx, store.SurveyStart)
		return nil
	}
}

func (s *SurveyScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if !s.session.Active() {
		return s, nil
	}

	if msg.Err != nil {
		title, body := describeSubmitError(msg.Err)
		n := notice.New(title, body, notice.KindError)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: n} }
	}

	s.submitted = true
	s.recordEvent(s.ctx, store.SurveySubmit)

	next := result.New(result.Options{
		Prediction: msg.Prediction,
		Questions:  s.session.Store.Questions(),
		Insight:    s.opts.Insight,
		Timeout:    s.opts.InsightTimeout,
	})
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SurveyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if !s.loaded || s.submitting {
		return s, nil
	}

	if s.questionCount() == 0 {
		switch key {
		case "r", "R":
			fresh := New(s.opts)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: fresh} }
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if key == "esc" {
		if s.session.Store.Answered() == 0 {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.confirmQuit = true
		return s, nil
	}

	if s.reviewing {
		switch key {
		case "enter":
			return s.submit()
		case "shift+tab", "pgup":
			s.reviewing = false
			s.errMsg = ""
			s.goTo(s.questionCount() - 1)
		}
		return s, nil
	}

	switch key {
	case "enter":
		return s.confirm()
	case "tab", "pgdown":
		s.advance()
		return s, nil
	case "shift+tab", "pgup":
		if s.index > 0 {
			s.goTo(s.index - 1)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.control, cmd = s.control.update(msg)
	return s, cmd
}

// confirm stores the control's value as the current question's response.
func (s *SurveyScreen) confirm() (screen.Screen, tea.Cmd) {
	q := s.current()
	err := s.session.Store.Dispatch(survey.UpdateResponse{QuestionID: q.ID(), Response: s.control.value()})
	if err != nil {
		var re *question.ResponseError
		reason := err.Error()
		if errors.As(err, &re) {
			reason = re.Reason
		}
		s.control = s.control.reject(reason)
		return s, nil
	}
	s.errMsg = ""
	s.advance()
	return s, nil
}

// advance moves to the next question, or to the review page after the last.
func (s *SurveyScreen) advance() {
	if s.index+1 < s.questionCount() {
		s.goTo(s.index + 1)
		return
	}
	s.reviewing = true
}

func (s *SurveyScreen) goTo(i int) {
	qs := s.session.Store.Questions()
	if i < 0 || i >= len(qs) {
		return
	}
	s.index = i
	s.control = newControl(qs[i])
}

func (s *SurveyScreen) submit() (screen.Screen, tea.Cmd) {
	responses, err := s.session.Submission()
	if errors.Is(err, survey.ErrIncomplete) {
		missing := s.session.Store.Missing()
		s.errMsg = fmt.Sprintf("%d question(s) still unanswered", len(missing))
		s.reviewing = false
		s.goTo(s.indexOf(missing[0]))
		return s, nil
	}

	feedback := s.opts.Feedback
	if feedback == nil {
		feedback, err = repository.FeedbackFrom(s.opts.Source)
		if err != nil {
			return s, func() tea.Msg { return feedbackMsg{Err: err} }
		}
	}

	s.submitting = true
	ctx := repository.WithSessionID(s.ctx, s.session.ID)
	return s, func() tea.Msg {
		p, err := feedback.RequestFeedback(ctx, repository.Responses(responses))
		return feedbackMsg{Prediction: p, Err: err}
	}
}

func (s *SurveyScreen) recordEvent(ctx context.Context, action string) {
	if s.opts.EventRepo == nil {
		return
	}
	err := s.opts.EventRepo.AppendSurveyEvent(ctx, store.SurveyEventData{
		SessionID: s.session.ID,
		Action:    action,
		Questions: len(s.session.Store.Questions()),
		Answered:  s.session.Store.Answered(),
	})
	if err != nil {
		log.Printf("record survey %s: %v", action, err)
	}
}

func (s *SurveyScreen) current() question.Question {
	return s.session.Store.Questions()[s.index]
}

func (s *SurveyScreen) questionCount() int {
	return len(s.session.Store.Questions())
}

func (s *SurveyScreen) indexOf(id string) int {
	for i, q := range s.session.Store.Questions() {
		if q.ID() == id {
			return i
		}
	}
	return 0
}

// describeSubmitError turns a submission failure into a notice.
func describeSubmitError(err error) (title, body string) {
	var (
		se *repository.StatusError
		ue *repository.UnavailableError
		de *repository.DecodeError
	)
	switch {
	case errors.As(err, &se):
		status := se.Status
		if status == "" {
			status = fmt.Sprintf("HTTP %d", se.StatusCode)
		}
		return "Submission failed", fmt.Sprintf("The prediction service answered:\n%s\n\nYour answers are kept. Go back and try again.", status)
	case errors.As(err, &ue):
		return "Service unavailable", "Could not reach the prediction service.\nCheck your connection and try again."
	case errors.As(err, &de):
		return "Unexpected response", "The prediction service sent a response that could not be read."
	case errors.Is(err, repository.ErrNoFeedback):
		return "Submission unavailable", "This survey source cannot produce predictions."
	}
	return "Submission failed", err.Error()
}
