// Package backend is the shared HTTP plumbing for the captioning and
// authentication services.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPDoer describes the HTTP client used by backend services
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is a non-2xx response
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s returned %d: %s", e.Method, e.Path, e.Code, e.Body)
	}
	return fmt.Sprintf("%s %s returned %d", e.Method, e.Path, e.Code)
}

// Client issues JSON requests against the backend host
type Client struct {
	baseURL string
	doer    HTTPDoer
}

// New builds a client. A nil doer gets an http.Client with the given timeout.
func New(baseURL string, timeout time.Duration, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		doer:    doer,
	}
}

// BaseURL returns the backend host the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one backend call. Body is JSON-encoded when non-nil.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    any
}

// Response is a raw backend response with its body read
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into out
func (r *Response) Decode(out any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return io.ErrUnexpectedEOF
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Err converts a non-2xx response into a StatusError
func (r *Response) Err(req Request) error {
	if r.OK() {
		return nil
	}
	body := strings.TrimSpace(string(r.Body))
	if len(body) > 256 {
		body = body[:256]
	}
	return &StatusError{Method: req.Method, Path: req.Path, Code: r.StatusCode, Body: body}
}

// Do sends req. Only transport failures are errors; callers inspect the
// status themselves.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", req.Path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", req.Path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.Path, err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// JSON sends req, requires a 2xx status and decodes the body into out.
// out may be nil.
func (c *Client) JSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if err := resp.Err(req); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
