package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/terappia/terapp/internal/mapper"
	"github.com/terappia/terapp/internal/question"
)

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4 << 10

// Client is the HTTP repository for the survey API.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ Repository = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// NewClient returns a Client for the API at baseURL. There is no request
// timeout; callers bound requests through their context.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetQuestions fetches and maps the question list. Transport failures,
// non-2xx statuses and malformed bodies all yield an empty list.
func (c *Client) GetQuestions(ctx context.Context) []question.Question {
	qs, err := c.FetchQuestions(ctx)
	if err != nil {
		log.Printf("fetch questions: %v", err)
		return []question.Question{}
	}
	return qs
}

// FetchQuestions is GetQuestions with the failure reported.
func (c *Client) FetchQuestions(ctx context.Context) ([]question.Question, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/questions", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read question list: %w", err)
	}
	return mapper.ParseQuestions(body)
}

// RequestFeedback posts the responses and returns the prediction. A non-2xx
// status yields a *StatusError, a transport failure an *UnavailableError.
func (c *Client) RequestFeedback(ctx context.Context, responses Responses) (*Prediction, error) {
	if responses == nil {
		responses = Responses{}
	}
	payload, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("encode responses: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnavailableError{Err: err}
	}
	p, err := ParsePrediction(body)
	if err != nil {
		return nil, &DecodeError{Body: body, Err: err}
	}
	p.StatusCode = resp.StatusCode
	return p, nil
}

func success(code int) bool {
	return code >= 200 && code < 300
}
