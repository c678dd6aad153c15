package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Defaults for the HTTP client.
const (
	DefaultBaseURL = "https://api.truesocks.net/"
	DefaultTimeout = 30 * time.Second
)

// Envelope status codes the API uses for successful responses. The API
// reports 209 for successful commands that carry an empty result.
const (
	statusOK      = 0
	statusOKEmpty = 209
)

// Client is the HTTP API client. All commands go through Do, which builds
// the authenticated GET request and decodes the response envelope.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for request-level debug logging.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// sanitizeURLError strips the query string from a url.Error's URL. The API
// key travels in the query, and url.Error embeds the full request URL in its
// message, so transport failures must be scrubbed before they are wrapped.
func sanitizeURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		urlErr.URL = u.String()
	}
	return err
}

// Do executes a single API command and decodes the envelope result into out.
// Every command is an HTTP GET; the key, command name, and command-specific
// parameters travel in the query string. Pass a nil out for commands whose
// result is not needed.
//
// Failures are classified: *TransportError when no response was received,
// *HTTPError for non-2xx statuses, *StatusError when the envelope reports a
// non-success code, and *DecodeError when the body does not match the
// contracted shape.
func (c *Client) Do(ctx context.Context, cmd string, params url.Values, out interface{}) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("parse base URL: %w", err)
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cmd", cmd)
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = sanitizeURLError(err)
		c.logger.Debug().Str("cmd", cmd).Err(err).Msg("request failed")
		return &TransportError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug().Str("cmd", cmd).Int("http_status", resp.StatusCode).Msg("non-2xx response")
		return &HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: c.baseURL, Err: sanitizeURLError(err)}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Command: cmd, Err: err}
	}

	if env.Status.Code != statusOK && env.Status.Code != statusOKEmpty {
		c.logger.Debug().
			Str("cmd", cmd).
			Int("status", env.Status.Code).
			Str("message", env.Status.Message).
			Msg("command rejected")
		return &StatusError{Code: env.Status.Code, Message: env.Status.Message}
	}

	c.logger.Debug().
		Str("cmd", cmd).
		Int("status", env.Status.Code).
		Dur("elapsed", time.Since(start)).
		Msg("command completed")

	if out != nil && len(env.Result) > 0 && !bytes.Equal(env.Result, []byte("null")) {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return &DecodeError{Command: cmd, Err: err}
		}
	}

	return nil
}
