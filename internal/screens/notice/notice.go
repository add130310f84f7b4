package notice

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/router"
	"github.com/terappia/terapp/internal/screen"
	"github.com/terappia/terapp/internal/ui/layout"
	"github.com/terappia/terapp/internal/ui/theme"
)

// Kind selects the notice color.
type Kind int

const (
	KindInfo Kind = iota
	KindError
)

// NoticeScreen shows a message until dismissed.
type NoticeScreen struct {
	title   string
	message string
	kind    Kind
}

var _ screen.Screen = (*NoticeScreen)(nil)
var _ screen.KeyHintProvider = (*NoticeScreen)(nil)

// New creates a notice with the given title and message.
func New(title, message string, kind Kind) *NoticeScreen {
	return &NoticeScreen{title: title, message: message, kind: kind}
}

func (n *NoticeScreen) Init() tea.Cmd {
	return nil
}

func (n *NoticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return n, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return n, nil
}

func (n *NoticeScreen) View(width, height int) string {
	border := theme.Accent
	if n.kind == KindError {
		border = theme.Error
	}

	box := theme.Notice.
		BorderForeground(border).
		Width(min(width-4, 60)).
		Render(lipgloss.NewStyle().Bold(true).Foreground(border).Render(n.title) + "\n\n" + n.message)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (n *NoticeScreen) Title() string {
	return n.title
}

func (n *NoticeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Back"}}
}
