package components

import (
	"math"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/ui/theme"
)

// Slider selects a number from [Min, Max] in Step increments.
type Slider struct {
	Min, Max, Step float64
	Value          float64
	// LowLabel and HighLabel are shown under the ends of the track.
	LowLabel, HighLabel string
	// Describe, when set, names the current value (e.g. "moderate").
	Describe func(float64) string
}

// NewSlider creates a slider positioned at value.
func NewSlider(lo, hi, step, value float64) Slider {
	return Slider{Min: lo, Max: hi, Step: step, Value: value}
}

// Update moves the thumb with the arrow keys. The thumb stops on steps
// from Min and on Max, even when Max is not on a step.
func (s Slider) Update(msg tea.Msg) (Slider, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || s.Step <= 0 {
		return s, nil
	}
	switch kmsg.String() {
	case "left", "h", "down", "j":
		s.Value = s.below(s.Value)
	case "right", "l", "up", "k":
		s.Value = s.above(s.Value)
	case "home":
		s.Value = s.Min
	case "end":
		s.Value = s.Max
	}
	return s, nil
}

const stepEpsilon = 1e-9

// above returns the next stop after v.
func (s Slider) above(v float64) float64 {
	k := math.Floor((v-s.Min)/s.Step+stepEpsilon) + 1
	return math.Min(s.Max, s.Min+k*s.Step)
}

// below returns the previous stop before v.
func (s Slider) below(v float64) float64 {
	k := math.Ceil((v-s.Min)/s.Step-stepEpsilon) - 1
	return math.Max(s.Min, s.Min+k*s.Step)
}

// View renders the track, thumb and labels within width cells.
func (s Slider) View(width int) string {
	track := max(min(width-4, 40), 8)
	pos := 0
	if s.Max > s.Min {
		pos = int(math.Round((s.Value - s.Min) / (s.Max - s.Min) * float64(track-1)))
	}

	bar := theme.SliderTrack.Render(strings.Repeat("─", pos)) +
		theme.SliderThumb.Render("●") +
		theme.SliderTrack.Render(strings.Repeat("─", track-pos-1))

	value := strconv.FormatFloat(s.Value, 'f', -1, 64)
	if s.Describe != nil {
		if d := s.Describe(s.Value); d != "" {
			value += " (" + d + ")"
		}
	}

	var b strings.Builder
	b.WriteString(bar)
	b.WriteString("\n")
	if s.LowLabel != "" || s.HighLabel != "" {
		gap := max(track-lipgloss.Width(s.LowLabel)-lipgloss.Width(s.HighLabel), 1)
		b.WriteString(theme.Hint.Render(s.LowLabel + strings.Repeat(" ", gap) + s.HighLabel))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.NewStyle().Width(track).Align(lipgloss.Center).
		Foreground(theme.Accent).Bold(true).Render(value))
	return b.String()
}
