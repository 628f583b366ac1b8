// Package upstream is the typed HTTP client for the GST billing backend. The
// gateway owns no business data of its own; every screen except the cart is
// served by these calls.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sahajbill/counter/pkg/config"
)

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client against the configured backend. The base URL is
// normalized the same way the web UI did it: trailing slash stripped, "/api"
// appended unless already present.
func New(cfg config.UpstreamConfig) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parsing upstream base url: %w", err)
	}
	base = strings.TrimRight(base, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// APIError is the decoded upstream failure. The backend reports errors as
// {"error": "..."} with a non-2xx status.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("upstream %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %d", e.Status)
}

// IsNotFound reports whether the upstream rejected the request with a 404.
func (e *APIError) IsNotFound() bool {
	return e != nil && e.Status == http.StatusNotFound
}

type tokenKey struct{}

// WithToken carries the caller's bearer token to every upstream call made
// under this context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body, "")
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// stream issues the request and hands the raw body to the caller, used for
// PDF and CSV downloads. The caller owns closing the body.
func (c *Client) stream(ctx context.Context, method, path string, query url.Values) (io.ReadCloser, string, error) {
	resp, err := c.send(ctx, method, path, query, nil, "")
	if err != nil {
		return nil, "", err
	}
	if err := checkStatus(resp); err != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// upload posts a raw multipart body, used for CSV imports.
func (c *Client) upload(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	applyToken(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream %s: %w", path, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	if body != nil {
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}
	applyToken(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	return resp, nil
}

func applyToken(ctx context.Context, req *http.Request) {
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	var envelope struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Message = envelope.Error
		if apiErr.Message == "" {
			apiErr.Message = envelope.Message
		}
	}
	return apiErr
}
