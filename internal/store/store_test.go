package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{tableSurveyEvents, tableSubmissions, tableLLMRequests, "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSurveyEvent(ctx, SurveyEventData{SessionID: "s1", Action: SurveyStart, Questions: 3}); err != nil {
		t.Fatalf("append survey event: %v", err)
	}
	if _, err := repo.AppendSubmission(ctx, SubmissionData{SessionID: "s1", Responses: "{}"}); err != nil {
		t.Fatalf("append submission: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock"}); err != nil {
		t.Fatalf("append llm request: %v", err)
	}

	events, err := repo.QuerySurveyEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query survey events: %v", err)
	}
	subs, err := repo.QuerySubmissions(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query submissions: %v", err)
	}
	llm, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query llm events: %v", err)
	}

	if len(events) != 1 || len(subs) != 1 || len(llm) != 1 {
		t.Fatalf("got %d/%d/%d rows, want 1/1/1", len(events), len(subs), len(llm))
	}
	if events[0].Sequence != 1 || subs[0].Sequence != 2 || llm[0].Sequence != 3 {
		t.Errorf("sequences = %d,%d,%d, want 1,2,3", events[0].Sequence, subs[0].Sequence, llm[0].Sequence)
	}
	if events[0].Action != SurveyStart || events[0].Questions != 3 {
		t.Errorf("survey event = %+v", events[0].SurveyEventData)
	}
}

func TestSubmissionRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	want := SubmissionData{
		SessionID:      "s1",
		APIURL:         "http://localhost:3001",
		Responses:      `{"q1":"good"}`,
		StatusCode:     200,
		Success:        true,
		Prediction:     `{"prediction":1}`,
		DepressionRisk: "Alto",
		Probability:    0.82,
		LatencyMs:      120,
	}
	id, err := repo.AppendSubmission(ctx, want)
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := repo.GetSubmission(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SubmissionData != want {
		t.Errorf("submission = %+v, want %+v", got.SubmissionData, want)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp %v not recent", got.Timestamp)
	}

	_, err = repo.GetSubmission(ctx, id+100)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing submission err = %v, want ErrNotFound", err)
	}
}

func TestQuerySubmissionsNewestFirstWithLimit(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := repo.AppendSubmission(ctx, SubmissionData{
			SessionID:  fmt.Sprintf("s%d", i),
			Responses:  "{}",
			StatusCode: 500,
		}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	subs, err := repo.QuerySubmissions(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("len = %d, want 2", len(subs))
	}
	if subs[0].SessionID != "s3" || subs[1].SessionID != "s2" {
		t.Errorf("order = %s,%s, want s3,s2", subs[0].SessionID, subs[1].SessionID)
	}

	older, err := repo.QuerySubmissions(ctx, QueryOpts{Before: subs[1].Sequence})
	if err != nil {
		t.Fatalf("query before: %v", err)
	}
	if len(older) != 2 {
		t.Errorf("older = %d, want 2", len(older))
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "haiku", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{Provider: "anthropic", Model: "haiku", InputTokens: 120, OutputTokens: 30, LatencyMs: 400, Success: false},
		{Provider: "openai", Model: "gpt-4o-mini", InputTokens: 80, OutputTokens: 40, LatencyMs: 100, Success: true},
	}
	for i, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	usage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("len = %d, want 2", len(usage))
	}

	haiku := usage[0]
	if haiku.Model != "haiku" || haiku.Calls != 2 || haiku.Failures != 1 {
		t.Errorf("haiku usage = %+v", haiku)
	}
	if haiku.InputTokens != 220 || haiku.OutputTokens != 80 {
		t.Errorf("haiku tokens = %d/%d, want 220/80", haiku.InputTokens, haiku.OutputTokens)
	}
	if haiku.AvgLatencyMs != 300 {
		t.Errorf("haiku avg latency = %v, want 300", haiku.AvgLatencyMs)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TERAPP_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("default path: %v", err)
	}
	if want := filepath.Join(dir, "terapp", "terapp.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}

	override := filepath.Join(dir, "custom", "h.db")
	t.Setenv("TERAPP_DB", override)
	p, err = DefaultDBPath()
	if err != nil {
		t.Fatalf("env path: %v", err)
	}
	if p != override {
		t.Errorf("path = %q, want %q", p, override)
	}
}

func TestDDLFromSchemas(t *testing.T) {
	stmts, err := ddl()
	if err != nil {
		t.Fatalf("ddl: %v", err)
	}
	all := strings.Join(stmts, "\n")

	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS `submissions`",
		"`id` INTEGER PRIMARY KEY AUTOINCREMENT",
		"`sequence` INTEGER NOT NULL UNIQUE",
		"`probability` REAL NOT NULL DEFAULT 0",
		"`api_url` TEXT NOT NULL DEFAULT ''",
		"`success` INTEGER NOT NULL DEFAULT 0",
		"CREATE INDEX IF NOT EXISTS `survey_events_session_id` ON `survey_events` (`session_id`)",
		"CREATE INDEX IF NOT EXISTS `llm_request_events_created_at` ON `llm_request_events` (`created_at`)",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("ddl missing %q", want)
		}
	}
}

func TestMigrationCreatesIndexes(t *testing.T) {
	s := openTestStore(t)

	for _, index := range []string{"survey_events_session_id", "submissions_created_at", "llm_request_events_purpose"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='index' AND name=?", index,
		).Scan(&name)
		if err != nil {
			t.Errorf("index %s: %v", index, err)
		}
	}
}
