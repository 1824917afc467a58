// Package croissant is a client for the Croissant economy REST API.
//
// Each call is a single best-effort attempt: no retries, no caching. Routes
// that act on behalf of a user need a client bound with WithToken.
package croissant

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

	"croissant-bot/pkg/retrylimit"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
	limiter *retrylimit.AdaptiveLimiter
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter paces every outbound call through lim.
func WithLimiter(lim *retrylimit.AdaptiveLimiter) Option {
	return func(c *Client) { c.limiter = lim }
}

// New returns a client for the API rooted at baseURL (e.g. https://host/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a copy of c that authenticates as the token's owner.
// Transport and limiter are shared.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bound token, if any.
func (c *Client) Token() string { return c.token }

func (c *Client) get(ctx context.Context, path string, auth bool, out any) error {
	return c.do(ctx, http.MethodGet, path, auth, nil, out)
}

// mutate runs a state-changing call and applies the application-level
// failure rule to its {message} body.
func (c *Client) mutate(ctx context.Context, method, path string, body any) (*Result, error) {
	var res Result
	if err := c.do(ctx, method, path, true, body, &res); err != nil {
		return nil, err
	}
	if strings.Contains(strings.ToLower(res.Message), "error") {
		return nil, &APIError{Status: http.StatusOK, Message: res.Message}
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	if auth && c.token == "" {
		return ErrNoToken
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	return retrylimit.Do(ctx, c.limiter, func() error {
		var rd io.Reader
		if payload != nil {
			rd = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
		if err != nil {
			return fmt.Errorf("build %s %s: %w", method, path, err)
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if auth {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%s %s: %w", method, path, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read %s %s: %w", method, path, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return &APIError{Status: resp.StatusCode, Message: errorMessage(data)}
		}
		if out == nil || len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	})
}

func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		return body.Error
	}
	return ""
}

func escape(segment string) string {
	return url.PathEscape(segment)
}
