// Package upstream is the typed client for the core inventory/sales API.
// Every authoritative operation of the dashboard (token issuance, stock
// deduction, invoice numbering, PDF rendering, report aggregation) lives
// behind this boundary; the gateway only shapes requests and decodes
// responses. Response decoding is deliberately tolerant: unknown fields are
// ignored and missing fields zero out, so backend shape drift degrades
// instead of crashing.
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

	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/config"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a core API client from configuration.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// errorEnvelope matches the core API's failure body. Different backend
// revisions disagree on the key, so both are accepted.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorEnvelope) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// do executes one JSON request against the core API. A non-empty token is
// attached as a bearer credential. When out is non-nil the 2xx body is
// decoded into it. All failures come back as *Failure.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return transport(fmt.Errorf("failed to marshal request: %w", err))
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return transport(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("core API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return transport(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return transport(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope errorEnvelope
		// A body that is not the error envelope still yields a usable
		// rejection; the message just falls back to empty.
		_ = json.Unmarshal(respBody, &envelope)
		c.logger.Warn("core API rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", envelope.text()))
		return rejection(resp.StatusCode, envelope.text())
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return transport(fmt.Errorf("failed to unmarshal response: %w", err))
		}
	}

	return nil
}

// stream executes a GET whose response body is handed to the caller as-is,
// for proxying file downloads. The caller must close the reader.
func (c *Client) stream(ctx context.Context, path, token string) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", transport(fmt.Errorf("failed to create request: %w", err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", transport(fmt.Errorf("failed to execute request: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		var envelope errorEnvelope
		_ = json.Unmarshal(respBody, &envelope)
		return nil, "", rejection(resp.StatusCode, envelope.text())
	}

	return resp.Body, resp.Header.Get("Content-Type"), nil
}
