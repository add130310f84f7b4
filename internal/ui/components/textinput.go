package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/terappia/terapp/internal/ui/theme"
)

// InputMode restricts which characters a TextInput accepts.
type InputMode int

const (
	InputAny InputMode = iota
	InputNumber
	InputDate
)

func (m InputMode) allows(r byte) bool {
	switch m {
	case InputNumber:
		return (r >= '0' && r <= '9') || r == '.' || r == '-'
	case InputDate:
		return (r >= '0' && r <= '9') || r == '-'
	default:
		return true
	}
}

// TextInput wraps bubbles/textinput with the app styling and an inline
// validation message.
type TextInput struct {
	Model textinput.Model
	Mode  InputMode
	err   string
}

// NewTextInput creates a focused text input. charLimit 0 means unlimited.
func NewTextInput(placeholder string, mode InputMode, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()

	return TextInput{Model: ti, Mode: mode}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages, dropping characters the mode does not allow.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if len(key) == 1 && !t.Mode.allows(key[0]) {
			return t, nil
		}
		t.err = ""
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input and the current validation message.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.err)
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// SetError shows msg under the input until the next keystroke.
func (t *TextInput) SetError(msg string) {
	t.err = msg
}

// Err returns the validation message currently shown.
func (t TextInput) Err() string {
	return t.err
}
