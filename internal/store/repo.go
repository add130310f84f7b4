package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a single record lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Survey lifecycle actions.
const (
	SurveyStart   = "start"
	SurveySubmit  = "submit"
	SurveyAbandon = "abandon"
)

// SurveyEventData captures a survey session lifecycle event.
type SurveyEventData struct {
	SessionID string
	Action    string
	Questions int
	Answered  int
}

// SurveyEventRecord is a stored survey event.
type SurveyEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SurveyEventData
}

// SubmissionData captures one prediction request and its outcome.
type SubmissionData struct {
	SessionID string
	APIURL    string
	// Responses is the JSON body that was sent.
	Responses string
	// StatusCode is the HTTP status, 0 when the request never got a response.
	StatusCode int
	Success    bool
	// Prediction is the raw JSON body of a successful response.
	Prediction     string
	DepressionRisk string
	Probability    float64
	LatencyMs      int64
	ErrorMessage   string
}

// Submission is a stored prediction request.
type Submission struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	SubmissionData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMModelUsage aggregates LLM calls per model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to the history log.
type EventRepo interface {
	// AppendSurveyEvent records a survey session lifecycle event.
	AppendSurveyEvent(ctx context.Context, data SurveyEventData) error

	// AppendSubmission records a prediction request and returns its id.
	AppendSubmission(ctx context.Context, data SubmissionData) (int64, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySurveyEvents returns survey events, newest first.
	QuerySurveyEvents(ctx context.Context, opts QueryOpts) ([]SurveyEventRecord, error)

	// QuerySubmissions returns submissions, newest first.
	QuerySubmissions(ctx context.Context, opts QueryOpts) ([]Submission, error)

	// GetSubmission returns one submission or ErrNotFound.
	GetSubmission(ctx context.Context, id int64) (*Submission, error)

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// LLMUsageByModel aggregates LLM calls per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
