package result

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/insight"
	"github.com/terappia/terapp/internal/llm"
	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/repository"
	"github.com/terappia/terapp/internal/router"
	"github.com/terappia/terapp/internal/screen"
	"github.com/terappia/terapp/internal/ui/components"
	"github.com/terappia/terapp/internal/ui/layout"
	"github.com/terappia/terapp/internal/ui/theme"
)

// maxFactors caps the feature feedback list.
const maxFactors = 6

// Options configure a result screen.
type Options struct {
	Prediction *repository.Prediction
	Questions  []question.Question
	// Insight is optional; a nil or disabled service hides the section.
	Insight *insight.Service
	Timeout time.Duration
}

type insightMsg struct {
	Insight *insight.Insight
	Err     error
}

// ResultScreen shows the prediction for a submitted survey.
type ResultScreen struct {
	opts   Options
	ctx    context.Context
	cancel context.CancelFunc

	insight    *insight.Insight
	insightErr error
	pending    bool
	offset     int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)
var _ screen.Closer = (*ResultScreen)(nil)

// New creates a result screen.
func New(opts Options) *ResultScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &ResultScreen{opts: opts, ctx: ctx, cancel: cancel}
}

func (s *ResultScreen) Init() tea.Cmd {
	if !s.opts.Insight.Enabled() || s.opts.Prediction == nil {
		return nil
	}
	s.pending = true

	ctx, svc := s.ctx, s.opts.Insight
	input := insight.NewInput(s.opts.Prediction, s.opts.Questions)
	timeout := s.opts.Timeout
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		in, err := svc.Explain(ctx, input)
		return insightMsg{Insight: in, Err: err}
	}
}

// Close stops a pending insight request.
func (s *ResultScreen) Close() {
	s.cancel()
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case insightMsg:
		s.pending = false
		s.insight, s.insightErr = msg.Insight, msg.Err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	p := s.opts.Prediction
	if p == nil {
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.TextDim), "No result.")
	}
	cw := min(width-4, 72)

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(layout.Centered(width, block), "\n")...)
	}

	add("")
	add(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Screening result"))
	add(lipgloss.NewStyle().Bold(true).Foreground(riskColor(p)).Render(p.RiskLabel()))
	add("")
	add(components.NewProgressBar("Confidence", p.Confidence(), true, cw).View())
	add("")

	if factors := p.TopFactors(maxFactors); len(factors) > 0 {
		add(theme.Label.Width(cw).Render("What weighed most"))
		for _, f := range factors {
			add(renderFactor(f, cw))
		}
		add("")
	}

	add(s.renderInsight(cw))
	add("")
	add(theme.Hint.Width(cw).Render(insight.Disclaimer))

	s.offset = min(s.offset, max(len(lines)-height, 0))
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *ResultScreen) renderInsight(cw int) string {
	box := theme.Card.Width(cw)
	switch {
	case !s.opts.Insight.Enabled():
		return ""
	case s.pending:
		return box.Foreground(theme.TextDim).Render("Preparing an AI reading of your answers...")
	case s.insightErr != nil:
		msg := "The AI reading is unavailable right now."
		if errors.Is(s.insightErr, context.DeadlineExceeded) {
			msg = "The AI reading took too long and was skipped."
		}
		var apiErr *llm.APIError
		if errors.As(s.insightErr, &apiErr) && apiErr.RateLimited() {
			msg = "The AI provider is rate limiting requests. Try again later."
		}
		return box.Foreground(theme.TextDim).Render(msg)
	case s.insight == nil:
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("AI reading"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(s.insight.Summary))
	if len(s.insight.Highlights) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Highlights"))
		for _, h := range s.insight.Highlights {
			b.WriteString("\n• " + h)
		}
	}
	if len(s.insight.Suggestions) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Label.Render("Suggestions"))
		for _, h := range s.insight.Suggestions {
			b.WriteString("\n• " + h)
		}
	}
	return box.Render(b.String())
}

func riskColor(p *repository.Prediction) color.Color {
	if p.Prediction == 1 {
		return theme.Warning
	}
	return theme.Success
}

func renderFactor(f repository.FeatureFeedback, cw int) string {
	head := fmt.Sprintf("• %s", f.Feature)
	if v := f.FormatValue(); v != "" {
		head += ": " + v
	}
	if f.ImpactLevel != "" {
		head += "  " + lipgloss.NewStyle().Foreground(impactColor(f.ImpactLevel)).Render("["+f.ImpactLevel+"]")
	}
	out := head
	if f.Message != "" {
		out += "\n  " + theme.Hint.Render(f.Message)
	}
	return lipgloss.NewStyle().Width(cw).Render(out)
}

func impactColor(level string) color.Color {
	switch strings.ToLower(level) {
	case "high", "alto", "alta":
		return theme.Warning
	case "medium", "médio", "média", "moderate", "moderado":
		return theme.Accent
	default:
		return theme.TextDim
	}
}
