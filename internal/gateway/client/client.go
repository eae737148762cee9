// Package client is the gateway's typed HTTP client for the ShareIt API. The
// gateway validates requests and proxies them; response bodies pass through
// untouched so the API stays the single source of payload shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Apurer/shareit/internal/shared/httpx"
)

// Response carries the upstream status code and raw JSON body.
type Response struct {
	Status int
	Body   []byte
}

// Client forwards requests to the ShareIt API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given API base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Get proxies a GET request for the given user.
func (c *Client) Get(ctx context.Context, userID int64, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, userID, path, query, nil)
}

// Post proxies a POST request with a JSON body for the given user.
func (c *Client) Post(ctx context.Context, userID int64, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, userID, path, nil, body)
}

// Patch proxies a PATCH request for the given user.
func (c *Client) Patch(ctx context.Context, userID int64, path string, query url.Values, body any) (*Response, error) {
	return c.do(ctx, http.MethodPatch, userID, path, query, body)
}

// Delete proxies a DELETE request for the given user.
func (c *Client) Delete(ctx context.Context, userID int64, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, userID, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, userID int64, path string, query url.Values, body any) (*Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID > 0 {
		req.Header.Set(httpx.HeaderSharerUserID, strconv.FormatInt(userID, 10))
	}
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		req.Header.Set(httpx.HeaderRequestID, requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: resp.StatusCode, Body: raw}, nil
}

type requestIDKey struct{}

// WithRequestID stamps the correlation id onto the context so the client
// propagates it upstream.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
