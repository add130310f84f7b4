package history

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/terappia/terapp/internal/store"
)

type fakeEventRepo struct {
	store.EventRepo
	subs []store.Submission
}

func (f *fakeEventRepo) QuerySubmissions(_ context.Context, opts store.QueryOpts) ([]store.Submission, error) {
	if opts.Limit != pageSize {
		return nil, nil
	}
	return f.subs, nil
}

func testRepo() *fakeEventRepo {
	ts := time.Date(2025, 3, 14, 10, 30, 0, 0, time.Local)
	return &fakeEventRepo{subs: []store.Submission{
		{ID: 2, Timestamp: ts, SubmissionData: store.SubmissionData{
			Success: true, StatusCode: 200, DepressionRisk: "Baixo", Probability: 0.8,
			Responses: `{"sleep":"7-8","cgpa":8.5}`,
		}},
		{ID: 1, Timestamp: ts.Add(-time.Hour), SubmissionData: store.SubmissionData{
			StatusCode: 500, ErrorMessage: "prediction request failed: 500 Internal Server Error",
		}},
	}}
}

func TestHistoryScreen_Lists(t *testing.T) {
	s := New(testRepo())
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view")
	}
	s.Update(s.Init()())

	view := s.View(80, 24)
	for _, want := range []string{"Mar 14, 2025 10:30", "Baixo  80%", "failed (HTTP 500)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestHistoryScreen_ExpandShowsResponses(t *testing.T) {
	s := New(testRepo())
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(80, 40)
	if !strings.Contains(view, "7-8") || !strings.Contains(view, "8.5") {
		t.Errorf("expected responses in expanded view:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(80, 40), "500 Internal Server Error") {
		t.Error("expected error message for failed submission")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeEventRepo{})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No submissions yet") {
		t.Error("expected empty state")
	}
}

func TestHistoryScreen_EscPops(t *testing.T) {
	s := New(testRepo())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc")
	}
}
