package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that report survey
// progress in the header.
type StatusProvider interface {
	Status() layout.Status
}

// Closer is implemented by screens that own work which must stop once the
// screen leaves the stack.
type Closer interface {
	Close()
}

// BackInterceptor is implemented by screens that handle Esc themselves
// while InterceptBack reports true, instead of being popped by the app.
type BackInterceptor interface {
	InterceptBack() bool
}
