// Package aegis is a typed client for the aegis authentication backend.
// Every call normalizes to an Outcome: on a 2xx the raw response body is
// carried verbatim so proxy handlers can relay it without reshaping; on a
// backend failure the backend's error message and status code are carried
// instead. Transport failures (unreachable backend, unparsable response)
// are returned as errors, never as Outcomes.
package aegis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/byteforge/aegis-frontend/internal/errors"
)

// Outcome is the normalized result of one backend call. Exactly one of
// Data and Err is meaningful, selected by Success.
type Outcome struct {
	Success    bool
	Data       json.RawMessage
	Err        string
	StatusCode int // backend-supplied; 0 when the backend omitted one
}

// Decode unmarshals a successful outcome's data into T.
func Decode[T any](o Outcome) (T, error) {
	var v T
	if !o.Success {
		return v, apperrors.Wrapf(apperrors.ErrBackend, "decode on failed outcome: %s", o.Err)
	}
	if err := json.Unmarshal(o.Data, &v); err != nil {
		return v, fmt.Errorf("decode backend response: %w", err)
	}
	return v, nil
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
	masterKey  string
}

type Option func(*Client)

// WithMasterKey authenticates the client for cross-site operations using
// the server-held shared secret.
func WithMasterKey(key string) Option {
	return func(c *Client) { c.masterKey = key }
}

// WithHTTPClient overrides the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken attaches a caller's bearer token to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

func (c *Client) get(ctx context.Context, path string) (Outcome, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) post(ctx context.Context, path string, body any) (Outcome, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Outcome, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return Outcome{}, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return Outcome{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	if c.masterKey != "" {
		req.Header.Set("X-Master-Key", c.masterKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Outcome{}, apperrors.Wrapf(apperrors.ErrTransport, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, apperrors.Wrapf(apperrors.ErrTransport, "read response body: %v", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return Outcome{Success: true, Data: data, StatusCode: resp.StatusCode}, nil
	}

	var failure struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &failure); err != nil || failure.Error == "" {
		failure.Error = resp.Status
	}
	return Outcome{Success: false, Err: failure.Error, StatusCode: resp.StatusCode}, nil
}
