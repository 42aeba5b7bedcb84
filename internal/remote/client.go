// Package remote is the HTTP client for the generation service.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/buildmyfolio/internal/schemas"
	"github.com/jonathan/buildmyfolio/internal/types"
)

// Service paths.
const (
	GeneratePath = "/api/generate"
	ATSScorePath = "/api/ats-score"
)

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "BuildMyFolio/1.0"

// ErrNoData is returned when a success response carries no data payload.
var ErrNoData = errors.New("response has no data")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("remote %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("remote %s returned status %d", e.URL, e.StatusCode)
}

// Error wraps transport and decoding failures.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("remote error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("remote error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Client talks to the generation service. Requests carry no client-side timeout;
// cancellation comes only from the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Generate posts a generation request and returns the validated bundle.
func (c *Client) Generate(ctx context.Context, req types.GenerateRequest) (*types.GeneratedBundle, error) {
	data, err := c.post(ctx, GeneratePath, req)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateBundle(data); err != nil {
		return nil, &Error{URL: c.baseURL + GeneratePath, Message: "bundle failed schema validation", Cause: err}
	}

	var bundle types.GeneratedBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, &Error{URL: c.baseURL + GeneratePath, Message: "failed to decode bundle", Cause: err}
	}
	return &bundle, nil
}

// ATSScore posts resume text and a job description and returns the validated score.
func (c *Client) ATSScore(ctx context.Context, req types.ATSRequest) (*types.ATSScore, error) {
	data, err := c.post(ctx, ATSScorePath, req)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateATSScore(data); err != nil {
		return nil, &Error{URL: c.baseURL + ATSScorePath, Message: "score failed schema validation", Cause: err}
	}

	var score types.ATSScore
	if err := json.Unmarshal(data, &score); err != nil {
		return nil, &Error{URL: c.baseURL + ATSScorePath, Message: "failed to decode score", Cause: err}
	}
	return &score, nil
}

// envelope is the service response shape.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// post sends body as JSON and returns the raw data payload of the envelope.
func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	url := c.baseURL + path

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: url, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Body: truncateBody(raw)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{URL: url, Message: "failed to decode response", Cause: err}
	}
	if env.Success != nil && !*env.Success {
		return nil, &Error{URL: url, Message: "service reported failure"}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, &Error{URL: url, Message: "invalid response", Cause: ErrNoData}
	}
	return env.Data, nil
}

func truncateBody(b []byte) string {
	const limit = 200
	r := []rune(strings.TrimSpace(string(b)))
	if len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return string(r)
}
