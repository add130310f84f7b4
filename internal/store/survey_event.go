package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSurveyEvent(ctx context.Context, data SurveyEventData) error {
	_, err := r.insert(ctx, tableSurveyEvents,
		[]string{"session_id", "action", "questions", "answered"},
		[]any{data.SessionID, data.Action, data.Questions, data.Answered},
	)
	if err != nil {
		return fmt.Errorf("save survey event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySurveyEvents(ctx context.Context, opts QueryOpts) ([]SurveyEventRecord, error) {
	query, args := selectRecent(tableSurveyEvents, opts,
		"id", "sequence", "created_at", "session_id", "action", "questions", "answered",
	).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query survey events: %w", err)
	}
	defer rows.Close()

	var out []SurveyEventRecord
	for rows.Next() {
		var (
			e  SurveyEventRecord
			ts int64
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Action, &e.Questions, &e.Answered); err != nil {
			return nil, fmt.Errorf("scan survey event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
