package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/screen"
)

type stub struct{}

func (s *stub) Init() tea.Cmd                          { return nil }
func (s *stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stub) View(int, int) string                   { return "stub" }
func (s *stub) Title() string                          { return "Stub" }
