package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/ui/theme"
)

// Choice is a single-selection list of labelled options.
type Choice struct {
	Labels   []string
	Selected int
	// Inline renders the options on one row and navigates with left/right.
	Inline bool
}

// NewChoice creates a choice list with selected preselected. An out of
// range selection falls back to the first option.
func NewChoice(labels []string, selected int, inline bool) Choice {
	if selected < 0 || selected >= len(labels) {
		selected = 0
	}
	return Choice{Labels: labels, Selected: selected, Inline: inline}
}

// Update moves the selection. Digits 1-9 jump straight to an option.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Labels) == 0 {
		return c, nil
	}

	prev, next := "up", "down"
	if c.Inline {
		prev, next = "left", "right"
	}

	switch key := kmsg.String(); key {
	case prev, "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case next, "j":
		if c.Selected < len(c.Labels)-1 {
			c.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Labels) {
				c.Selected = i
			}
		}
	}
	return c, nil
}

// View renders the options.
func (c Choice) View() string {
	parts := make([]string, len(c.Labels))
	for i, l := range c.Labels {
		line := fmt.Sprintf("%d) %s", i+1, l)
		if i == c.Selected {
			parts[i] = theme.Selected.Render("▸ " + line)
		} else {
			parts[i] = theme.Unselected.Render("  " + line)
		}
	}
	if c.Inline {
		return strings.Join(parts, "   ")
	}
	return strings.Join(parts, "\n")
}
