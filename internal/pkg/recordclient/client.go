package recordclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxErrorBody = 1 << 20

// Client talks to the record store. Every method issues exactly one request; nothing is cached or retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	routes     Routes
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithRoutes(r Routes) Option {
	return func(c *Client) {
		c.routes = r
	}
}

// New creates a client for the record store rooted at baseURL (e.g. http://localhost:8080/api).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid record store url %q", baseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		routes:     DefaultRoutes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the record store's response wrapper. Errors may arrive in "message" or "error".
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

type request struct {
	method   string
	path     string
	query    url.Values
	body     interface{}
	verb     string
	resource Resource
}

func (r request) fallback() string {
	return fmt.Sprintf("failed to %s %s", r.verb, r.resource)
}

// do performs req, decodes the envelope's data into out (when non-nil) and returns the envelope message.
func (c *Client) do(ctx context.Context, req request, out interface{}) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return "", fmt.Errorf("encode %s request: %w", req.resource, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", req.resource, err)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		slog.WarnContext(ctx, "record store unreachable",
			"method", req.method, "url", target, "request_id", requestID, "error", err)
		return "", &NetworkError{Method: req.method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return "", &NetworkError{Method: req.method, URL: target, Err: err}
	}

	slog.DebugContext(ctx, "record store call",
		"method", req.method,
		"url", target,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	var env envelope
	parsed := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &RemoteError{StatusCode: resp.StatusCode, Method: req.method, URL: target}
		if parsed {
			remoteErr.Message = extractMessage(env)
		}
		if remoteErr.Message == "" {
			remoteErr.Message = req.fallback()
			remoteErr.Fallback = true
		}
		slog.WarnContext(ctx, "record store rejected call",
			"method", req.method, "url", target, "status", resp.StatusCode,
			"request_id", requestID, "message", remoteErr.Message)
		return "", remoteErr
	}

	if !parsed {
		if len(bytes.TrimSpace(raw)) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("%w: %s %s", ErrMalformedResponse, req.method, target)
	}
	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", fmt.Errorf("%w: %s data: %v", ErrMalformedResponse, req.resource, err)
		}
	}
	return textOf(env.Message), nil
}

// extractMessage reads "message", then "error" as a string or as {"message": ...}.
func extractMessage(env envelope) string {
	if msg := textOf(env.Message); msg != "" {
		return msg
	}
	if msg := textOf(env.Error); msg != "" {
		return msg
	}
	var nested struct {
		Message string `json:"message"`
	}
	if len(env.Error) > 0 && json.Unmarshal(env.Error, &nested) == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

func textOf(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return strings.TrimSpace(s)
}
