package notice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/router"
)

func TestNotice_ViewShowsMessage(t *testing.T) {
	n := New("Submission failed", "HTTP 500", KindError)
	view := n.View(80, 20)
	if !strings.Contains(view, "Submission failed") || !strings.Contains(view, "HTTP 500") {
		t.Errorf("view missing title or message:\n%s", view)
	}
	if n.Title() != "Submission failed" {
		t.Errorf("Title = %q", n.Title())
	}
}

func TestNotice_EnterPops(t *testing.T) {
	n := New("t", "m", KindInfo)
	_, cmd := n.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestNotice_IgnoresOtherKeys(t *testing.T) {
	n := New("t", "m", KindInfo)
	_, cmd := n.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd != nil {
		t.Error("expected no command for an unbound key")
	}
}
