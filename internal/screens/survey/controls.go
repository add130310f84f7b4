package survey

import (
	"slices"
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/question"
	"github.com/terappia/terapp/internal/ui/components"
)

const datePlaceholder = "YYYY-MM-DD"

// control is the form control of the question on screen.
type control interface {
	update(msg tea.Msg) (control, tea.Cmd)
	view(width int) string
	// value is the candidate response.
	value() any
	// reject shows why the candidate response was refused.
	reject(reason string) control
}

type choiceControl struct {
	choice components.Choice
	values []string
}

func (c choiceControl) update(msg tea.Msg) (control, tea.Cmd) {
	var cmd tea.Cmd
	c.choice, cmd = c.choice.Update(msg)
	return c, cmd
}

func (c choiceControl) view(int) string      { return c.choice.View() }
func (c choiceControl) value() any            { return c.values[c.choice.Selected] }
func (c choiceControl) reject(string) control { return c }

type inputControl struct {
	input components.TextInput
}

func (c inputControl) update(msg tea.Msg) (control, tea.Cmd) {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c inputControl) view(int) string { return c.input.View() }
func (c inputControl) value() any       { return c.input.Value() }

func (c inputControl) reject(reason string) control {
	c.input.SetError(reason)
	return c
}

type sliderControl struct {
	slider components.Slider
}

func (c sliderControl) update(msg tea.Msg) (control, tea.Cmd) {
	var cmd tea.Cmd
	c.slider, cmd = c.slider.Update(msg)
	return c, cmd
}

func (c sliderControl) view(width int) string { return c.slider.View(width) }
func (c sliderControl) value() any            { return c.slider.Value }
func (c sliderControl) reject(string) control { return c }

// newControl builds the control for q, prefilled with its response.
func newControl(q question.Question) control {
	current, answered := q.Response()

	switch v := question.Unwrap(q).(type) {
	case question.Alternative:
		selected := 0
		if s, ok := current.(string); ok && answered {
			selected = max(slices.Index(v.Alternatives(), s), 0)
		}
		return choiceControl{
			choice: components.NewChoice(v.Labels(), selected, question.LayoutOf(q).Inline),
			values: v.Alternatives(),
		}

	case question.Date:
		in := components.NewTextInput(datePlaceholder, components.InputDate, len(datePlaceholder))
		if s, ok := current.(string); ok && answered {
			in.SetValue(s)
		}
		return inputControl{input: in}

	case question.Slider:
		val := v.DefaultValue()
		if f, ok := current.(float64); ok && answered {
			val = f
		}
		s := components.NewSlider(v.Min(), v.Max(), v.Step(), val)
		s.LowLabel, s.HighLabel = v.EndLabels()
		s.Describe = v.Label
		return sliderControl{slider: s}

	default:
		placeholder := ""
		if n, ok := v.(question.Number); ok {
			placeholder = n.Placeholder()
		}
		in := components.NewTextInput(placeholder, components.InputNumber, 16)
		if f, ok := current.(float64); ok && answered {
			in.SetValue(strconv.FormatFloat(f, 'f', -1, 64))
		}
		return inputControl{input: in}
	}
}
