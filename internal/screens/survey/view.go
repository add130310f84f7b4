package survey

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/ui/components"
	"github.com/terappia/terapp/internal/ui/layout"
	"github.com/terappia/terapp/internal/ui/theme"
)

func (s *SurveyScreen) View(width, height int) string {
	switch {
	case !s.loaded:
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.TextDim), "Loading questions...")
	case s.questionCount() == 0:
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"No questions available right now.\n\nPress R to try again.")
	case s.confirmQuit:
		return layout.Message(width, height, theme.Body,
			"Leave the survey?\n\nYour answers will be discarded. (y/n)")
	case s.submitting:
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.Secondary),
			"Sending your answers...")
	case s.reviewing:
		return s.renderReview(width)
	}
	return s.renderQuestion(width)
}

func (s *SurveyScreen) renderQuestion(width int) string {
	q := s.current()
	total := s.questionCount()
	cw := min(width-4, 72)

	var b strings.Builder
	b.WriteString("\n")

	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", s.index+1, total),
		components.Fraction(s.session.Store.Answered(), total),
		true, cw,
	)
	b.WriteString(layout.Centered(width, bar.View()))
	b.WriteString("\n\n")

	body := lipgloss.NewStyle().Width(cw)
	b.WriteString(layout.Centered(width, body.Foreground(theme.Text).Bold(true).Render(q.Title())))
	b.WriteString("\n")
	if d := q.Description(); d != "" {
		b.WriteString(layout.Centered(width, body.Foreground(theme.TextDim).Render(d)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(layout.Centered(width, body.Render(s.control.view(cw))))
	b.WriteString("\n\n")

	if a := question.FormatResponse(q); a != "" {
		b.WriteString(layout.Centered(width, theme.Answered.Render("✓ "+a)))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(layout.Centered(width, theme.ErrorText.Render(s.errMsg)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *SurveyScreen) renderReview(width int) string {
	cw := min(width-4, 72)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Title.Render("Review your answers")))
	b.WriteString("\n\n")

	var rows []string
	for i, q := range s.session.Store.Questions() {
		answer := theme.Pending.Render("unanswered")
		if a := question.FormatResponse(q); a != "" {
			answer = theme.Answered.Render(a)
		}
		rows = append(rows, fmt.Sprintf("%2d. %s  %s", i+1, truncate(q.Title(), cw/2), answer))
	}
	b.WriteString(layout.Centered(width, theme.Card.Width(cw).Render(strings.Join(rows, "\n"))))
	b.WriteString("\n\n")

	if missing := len(s.session.Store.Missing()); missing > 0 {
		b.WriteString(layout.Centered(width, theme.Pending.Render(
			fmt.Sprintf("%d question(s) unanswered. Enter jumps to the first one.", missing))))
	} else {
		b.WriteString(layout.Centered(width, theme.Hint.Render("Press Enter to send your answers.")))
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:max(n-1, 0)]) + "…"
}
