// Package api is the request layer for the notes server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Paintersrp/noted/internal/logging"
)

// TokenSource yields the bearer token at request time. An empty token sends
// the request unauthenticated.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	baseURL *url.URL
	tokens  TokenSource
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit throttles outgoing requests. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "invalid api url")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("invalid api url %q", baseURL)
	}
	if tokens == nil {
		tokens = TokenFunc(func() string { return "" })
	}

	c := &Client{
		baseURL: u,
		tokens:  tokens,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("login response has no access token")
	}
	return resp.AccessToken, nil
}

// Register creates an account. The success body is ignored.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []Note{}
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id ID) (Note, error) {
	var note Note
	err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id.String()), nil, &note)
	return note, err
}

// CreateNote returns the id the server assigned, which may be empty.
func (c *Client) CreateNote(ctx context.Context, in NoteInput) (ID, error) {
	var resp createdResponse
	if err := c.do(ctx, http.MethodPost, "/notes", in, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) UpdateNote(ctx context.Context, id ID, in NoteInput) error {
	return c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id.String()), in, nil)
}

func (c *Client) DeleteNote(ctx context.Context, id ID) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id.String()), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return errors.Wrap(err, "rate limit wait")
		}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// read per request: a logout may have happened since the caller rendered
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			zap.String(logging.FieldRequestID, requestID),
			zap.String(logging.FieldMethod, method),
			zap.String(logging.FieldPath, path),
			zap.Error(err),
		)
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	c.logger.Debug("request completed",
		zap.String(logging.FieldRequestID, requestID),
		zap.String(logging.FieldMethod, method),
		zap.String(logging.FieldPath, path),
		zap.Int(logging.FieldStatus, resp.StatusCode),
		zap.Duration(logging.FieldDuration, time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Detail: parseDetail(respBody)}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrap(err, "failed to decode response")
	}
	return nil
}
