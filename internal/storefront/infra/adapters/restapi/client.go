// Package restapi is the storefront's typed client for the REST backend.
// Every response passes through the parsers in parse.go before it reaches
// the core, so aggregation code never sees raw JSON.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/vino121095/valenmart-storefront/internal/pkg/interceptors"
	"github.com/vino121095/valenmart-storefront/internal/pkg/interceptors/constants"
)

const maxErrorBody = 4 << 10

// Observer receives one call per backend request. outcome is "ok" or the
// failing Kind ("transport", "status", "malformed", "unauthorized").
type Observer interface {
	ObserveBackend(operation, outcome string)
}

// Client talks to the backend under BaseURL (e.g. "http://host:8000").
// Paths are appended verbatim, so BaseURL must not end in "/api".
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// Option configures the client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithTransport replaces the base transport under the interceptor chain.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = otelhttp.NewTransport(interceptors.Chain(rt))
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(interceptors.Chain(http.DefaultTransport)),
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// do issues one request and returns the response payload with any
// {"data": ...} envelope removed.
func (c *Client) do(ctx context.Context, op, method, path string, body any) (payload json.RawMessage, err error) {
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackend(op, outcome(err))
		}
	}()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{Kind: KindTransport, Op: op, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(b)
	}

	if method != http.MethodGet && interceptors.GetValue(ctx, constants.ContextKeyIdempotencyKey) == "" {
		ctx = interceptors.WithIdempotencyKey(ctx, uuid.NewString())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := KindStatus
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			kind = KindUnauthorized
		}
		return nil, &APIError{Kind: kind, Op: op, Status: resp.StatusCode, Message: errorMessage(raw)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: KindTransport, Op: op, Err: fmt.Errorf("reading body: %w", err)}
	}
	payload, err = unwrapEnvelope(raw)
	if err != nil {
		return nil, &APIError{Kind: KindMalformed, Op: op, Err: err}
	}
	return payload, nil
}

// unwrapEnvelope returns v for {"data": v} and the body itself otherwise.
// An empty body yields JSON null.
func unwrapEnvelope(raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	if raw[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err == nil {
			if data, ok := env["data"]; ok {
				return data, nil
			}
		}
	}
	return raw, nil
}

// errorMessage pulls "message" or "error" out of a JSON error body.
func errorMessage(raw []byte) string {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err == nil {
		f := fields(body)
		if msg := f.str("message", "error", "msg"); msg != "" {
			return msg
		}
	}
	return strings.TrimSpace(string(raw))
}

func malformed(op string, err error) error {
	return &APIError{Kind: KindMalformed, Op: op, Err: err}
}
