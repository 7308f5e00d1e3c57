package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/catalyst/pkg/domain"
)

const (
	programsPath    = "/api/collections/programs"
	defaultTimeout  = 30 * time.Second
	maxErrorBodyLen = 1 << 20 // 1 MB
)

// Endpoint labels reported to the Observer.
const (
	EndpointListPrograms = "list_programs"
	EndpointGetProgram   = "get_program"
)

// Observer receives one observation per completed request.
type Observer interface {
	ObserveRequest(endpoint, outcome string, d time.Duration)
}

// Client is the read-only client for the Catalyst content source.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	observer   Observer
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithObserver sets the metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// New creates a new content-source client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured content-source base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListPrograms returns every program summary in the order the source returns them.
func (c *Client) ListPrograms(ctx context.Context) ([]domain.ProgramSummary, error) {
	var list domain.ProgramList
	if err := c.get(ctx, EndpointListPrograms, programsPath+"?"+widgetRelation(), &list); err != nil {
		return nil, fmt.Errorf("client.ListPrograms: %w", err)
	}
	if list.Data == nil {
		return []domain.ProgramSummary{}, nil
	}
	return list.Data, nil
}

// GetProgram fetches one program, including its widget, by id.
func (c *Client) GetProgram(ctx context.Context, id string) (*domain.ProgramDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("client.GetProgram: %w", ErrEmptyID)
	}
	var p domain.ProgramDetail
	path := programsPath + "/" + url.PathEscape(id) + "?" + widgetRelation()
	if err := c.get(ctx, EndpointGetProgram, path, &p); err != nil {
		return nil, fmt.Errorf("client.GetProgram: %w", err)
	}
	return &p, nil
}

func widgetRelation() string {
	params := url.Values{}
	params.Set("relations", "widget")
	return params.Encode()
}

func (c *Client) get(ctx context.Context, endpoint, path string, out any) (err error) {
	start := time.Now()
	reqID := uuid.NewString()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		if c.observer != nil {
			c.observer.ObserveRequest(endpoint, outcome(err), elapsed)
		}
		ev := c.logger.Debug()
		if err != nil {
			ev = c.logger.Warn().Err(err)
		}
		ev.Str("request_id", reqID).
			Str("endpoint", endpoint).
			Str("path", path).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("content request")
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "do request", Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readResponseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "decode response", Err: err}
	}
	return nil
}

func readResponseError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
	if err != nil {
		return &ResponseError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil {
		if apiErr.Error != "" {
			return &ResponseError{StatusCode: resp.StatusCode, Message: apiErr.Error}
		}
		if apiErr.Message != "" {
			return &ResponseError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &ResponseError{StatusCode: resp.StatusCode, Message: msg}
}
