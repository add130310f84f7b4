package history

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/router"
	"github.com/terappia/terapp/internal/screen"
	"github.com/terappia/terapp/internal/store"
	"github.com/terappia/terapp/internal/ui/layout"
	"github.com/terappia/terapp/internal/ui/theme"
)

// pageSize is the number of submissions loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Submissions []store.Submission
	Err         error
}

// HistoryScreen lists past survey submissions.
type HistoryScreen struct {
	eventRepo   store.EventRepo
	submissions []store.Submission
	selected    int
	expanded    map[int]bool
	loaded      bool
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		subs, err := repo.QuerySubmissions(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Submissions: subs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.submissions = msg.Submissions
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.submissions)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("Error: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.TextDim),
			"Loading history...")
	}
	if len(s.submissions) == 0 {
		return layout.Message(width, height, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"No submissions yet. Take the survey to see your results here.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, sub := range s.submissions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s", prefix, sub.Timestamp.Local().Format("Jan 02, 2006 15:04"), outcome(sub))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !sub.Success:
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(layout.Centered(width, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(layout.Centered(width, renderDetails(sub, min(width-8, 64))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// outcome summarizes a submission in one line.
func outcome(sub store.Submission) string {
	if !sub.Success {
		if sub.StatusCode > 0 {
			return fmt.Sprintf("failed (HTTP %d)", sub.StatusCode)
		}
		return "failed (no response)"
	}
	risk := sub.DepressionRisk
	if risk == "" {
		risk = "result"
	}
	return fmt.Sprintf("%s  %.0f%%", risk, sub.Probability*100)
}

func renderDetails(sub store.Submission, width int) string {
	var lines []string
	if sub.ErrorMessage != "" {
		lines = append(lines, theme.ErrorText.Render(sub.ErrorMessage))
	}

	var responses map[string]any
	if err := json.Unmarshal([]byte(sub.Responses), &responses); err == nil {
		keys := make([]string, 0, len(responses))
		for k := range responses {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s: %v", theme.Label.Render(k), responses[k]))
		}
	}
	if len(lines) == 0 {
		lines = append(lines, theme.Hint.Render("No details recorded"))
	}

	return theme.Card.Width(width).Render(strings.Join(lines, "\n"))
}
