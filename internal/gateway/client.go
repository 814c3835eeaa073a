// Package gateway is the HTTP client for the shop's REST backend. It
// attaches bearer tokens from the token supplier, converts non-2xx
// responses into typed errors, and exposes one wrapper per backend
// endpoint so the rest of the gateway never builds paths by hand.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single backend round trip.
const DefaultTimeout = 30 * time.Second

// ErrAuthRequired is returned when a call demands a token but none can
// be obtained. The request is never sent in that case.
var ErrAuthRequired = errors.New("gateway: authentication required")

// TokenProvider hands out a fresh bearer token per request. The
// provider may cache and refresh internally; the gateway never does.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	HasSession() bool
}

// GatewayError is a non-2xx backend response. Message comes from the
// response body's message field when one can be parsed; a parse failure
// never masks the status code.
type GatewayError struct {
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Client issues requests to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// NewClient builds a backend client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(baseURL string, tokens TokenProvider, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// Do issues one request. A bearer token is attached when the call
// requires auth, or opportunistically whenever a session exists. The
// response body is decoded into out when out is non-nil; the caller's
// type is a contract, not a guarantee — the backend owns the shapes.
func (c *Client) Do(ctx context.Context, method, path string, body any, requiresAuth bool, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if requiresAuth || c.tokens.HasSession() {
		token, tokenErr := c.tokens.Token(ctx)
		if tokenErr != nil || token == "" {
			if requiresAuth {
				return ErrAuthRequired
			}
		} else {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeGatewayError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, requiresAuth bool, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, requiresAuth, out)
}

// Post issues a POST request.
func (c *Client) Post(ctx context.Context, path string, body any, requiresAuth bool, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, requiresAuth, out)
}

// Put issues a PUT request.
func (c *Client) Put(ctx context.Context, path string, body any, requiresAuth bool, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, requiresAuth, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, requiresAuth bool, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, requiresAuth, out)
}

func decodeGatewayError(resp *http.Response) error {
	gerr := &GatewayError{Status: resp.StatusCode, Message: "request failed"}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Message != "" {
			gerr.Message = body.Message
		} else if body.Error != "" {
			gerr.Message = body.Error
		}
	}
	return gerr
}
