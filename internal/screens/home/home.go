package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/router"
	"github.com/terappia/terapp/internal/screen"
	"github.com/terappia/terapp/internal/screens/history"
	"github.com/terappia/terapp/internal/screens/notice"
	surveyscreen "github.com/terappia/terapp/internal/screens/survey"
	"github.com/terappia/terapp/internal/store"
	"github.com/terappia/terapp/internal/ui/components"
	"github.com/terappia/terapp/internal/ui/theme"
)

const (
	headline = "Cuidar da mente começa pelo autoconhecimento"
	about    = "Responda a um questionário sobre sua rotina e sua vida acadêmica. " +
		"Um modelo de inteligência artificial analisa as respostas e devolve um " +
		"retorno sobre sinais de risco de depressão."
	disclaimer = "Importante: o Terapp.ia não substitui acompanhamento médico ou " +
		"psicológico. Ele é apenas uma ferramenta de apoio e conscientização."
)

const bannerArt = `▀█▀ █▀▀ █▀█ ▄▀█ █▀█ █▀█   █ ▄▀█
 █  ██▄ █▀▄ █▀█ █▀▀ █▀▀ ▄ █ █▀█`

// HomeScreen is the landing screen of the application.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. eventRepo may be nil, in which case history
// is unavailable.
func New(opts surveyscreen.Options, eventRepo store.EventRepo) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start survey", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: surveyscreen.New(opts)}
			}
		}},
		{Label: "History", Action: func() tea.Cmd {
			if eventRepo == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: notice.New("History",
						"History is unavailable: the local database could not be opened.", notice.KindInfo)}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(eventRepo)}
			}
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-6, 64)
	block := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string
	if width >= 40 && height >= 18 {
		sections = append(sections, block.Foreground(theme.Primary).Bold(true).Render(bannerArt))
	}
	sections = append(sections,
		block.Foreground(theme.Secondary).Bold(true).Render(headline),
		block.Foreground(theme.Text).Render(about),
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
		theme.Notice.Width(cw).Render(theme.Hint.Render(disclaimer)),
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
