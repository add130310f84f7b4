package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var submissionColumns = []string{
	"id", "sequence", "created_at", "session_id", "api_url", "responses",
	"status_code", "success", "prediction", "depression_risk", "probability",
	"latency_ms", "error_message",
}

func (r *eventRepo) AppendSubmission(ctx context.Context, data SubmissionData) (int64, error) {
	id, err := r.insert(ctx, tableSubmissions,
		submissionColumns[3:],
		[]any{
			data.SessionID, data.APIURL, data.Responses,
			data.StatusCode, data.Success, data.Prediction, data.DepressionRisk, data.Probability,
			data.LatencyMs, data.ErrorMessage,
		},
	)
	if err != nil {
		return 0, fmt.Errorf("save submission: %w", err)
	}
	return id, nil
}

func (r *eventRepo) QuerySubmissions(ctx context.Context, opts QueryOpts) ([]Submission, error) {
	query, args := selectRecent(tableSubmissions, opts, submissionColumns...).Query()
	return r.scanSubmissions(ctx, query, args)
}

func (r *eventRepo) GetSubmission(ctx context.Context, id int64) (*Submission, error) {
	query, args := builder().Select(submissionColumns...).
		From(entsql.Table(tableSubmissions)).
		Where(entsql.EQ("id", id)).
		Query()

	subs, err := r.scanSubmissions(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, fmt.Errorf("submission %d: %w", id, ErrNotFound)
	}
	return &subs[0], nil
}

func (r *eventRepo) scanSubmissions(ctx context.Context, query string, args []any) ([]Submission, error) {
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var out []Submission
	for rows.Next() {
		var (
			s  Submission
			ts int64
		)
		err := rows.Scan(
			&s.ID, &s.Sequence, &ts, &s.SessionID, &s.APIURL, &s.Responses,
			&s.StatusCode, &s.Success, &s.Prediction, &s.DepressionRisk, &s.Probability,
			&s.LatencyMs, &s.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		s.Timestamp = fromMillis(ts)
		out = append(out, s)
	}
	return out, rows.Err()
}
