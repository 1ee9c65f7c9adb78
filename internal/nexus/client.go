// Package nexus is a client for the NexusAI inference API.
//
// Every call is a single, independent attempt: the client keeps no state
// between calls and performs no retry, caching or logging. Failures surface as
// *HTTPError (non-2xx status), *TransportError (no response) or
// *ValidationError (a 2xx response whose body has the wrong shape). The one
// exception is a request body that cannot be encoded as JSON: that error is
// returned before anything is sent and matches none of the predicates.
package nexus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8000/api/v1"

	// APIKeyHeader carries the credential on every request.
	APIKeyHeader = "X-API-Key"

	// DefaultMaxTokens and DefaultTemperature apply when GenerateText is called without options.
	DefaultMaxTokens   = 50
	DefaultTemperature = 0.7

	defaultUserAgent = "nexusctl"
	contentTypeJSON  = "application/json"
)

// HTTPClient is the subset of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config is the immutable connection configuration of a Client.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client sends authenticated requests to a NexusAI endpoint.
type Client struct {
	config     Config
	httpClient HTTPClient
	headers    http.Header
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL. An empty value keeps the default.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.config.BaseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.headers.Set("User-Agent", ua)
		}
	}
}

// NewClient creates a client authenticated with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		config: Config{
			BaseURL: DefaultBaseURL,
			APIKey:  apiKey,
		},
		httpClient: http.DefaultClient,
		headers:    http.Header{},
	}
	c.headers.Set(APIKeyHeader, apiKey)
	c.headers.Set("Accept", contentTypeJSON)
	c.headers.Set("User-Agent", defaultUserAgent)

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// ListModels returns the models available to the API key.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	data, err := c.send(ctx, http.MethodGet, "/models", nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := decodeJSON(data, &raw); err != nil {
		return nil, err
	}
	if !isJSONKind(raw, '[') {
		return nil, &ValidationError{Reason: "models response is not a JSON array"}
	}

	models := []Model{}
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, &ValidationError{Reason: "models response has unexpected field types", Err: err}
	}
	for _, m := range models {
		if err := m.validate(); err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
	}

	return models, nil
}

// GenerateOption adjusts a GenerationRequest.
type GenerateOption func(*GenerationRequest)

// WithMaxTokens sets max_tokens. The value is forwarded as is.
func WithMaxTokens(n int) GenerateOption {
	return func(r *GenerationRequest) {
		r.MaxTokens = n
	}
}

// WithTemperature sets temperature. The value is forwarded as is.
func WithTemperature(t float64) GenerateOption {
	return func(r *GenerationRequest) {
		r.Temperature = t
	}
}

// GenerateText runs a generation against modelID. The server is the sole
// validator of max_tokens and temperature.
func (c *Client) GenerateText(ctx context.Context, modelID, prompt string, opts ...GenerateOption) (*GenerationResponse, error) {
	req := GenerationRequest{
		Prompt:      prompt,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(&req)
	}

	path := fmt.Sprintf("/models/%s/generate", url.PathEscape(modelID))
	data, err := c.send(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	return decodeGenerationResponse(data)
}

// GetUsage returns the usage document for the API key. Only JSON validity is checked.
func (c *Client) GetUsage(ctx context.Context) (UsageStats, error) {
	data, err := c.send(ctx, http.MethodGet, "/usage", nil)
	if err != nil {
		return nil, err
	}

	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return nil, &ValidationError{Reason: "usage response is not valid JSON"}
	}

	return UsageStats(data), nil
}

// Do sends one request to path, relative to the base URL. A non-nil body is
// encoded as JSON. When out is non-nil the 2xx response body is decoded into
// it; when out is nil the body is discarded.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	data, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeJSON(data, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, error) {
	target := c.config.BaseURL + path

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
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = c.headers.Clone()
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{Method: method, URL: target, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + method, URL: target, Err: err}
	}

	return data, nil
}

func decodeJSON(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &ValidationError{Reason: "empty response body"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ValidationError{Reason: "response body is not the expected JSON", Err: err}
	}
	return nil
}
