package agentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no server URL is configured.
const DefaultBaseURL = "http://localhost:3000"

// maxErrorBodyLen caps how much of a failed response body ends up in errors.
const maxErrorBodyLen = 512

// Client talks to an agent service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// ClientConfig contains configuration for a Client.
type ClientConfig struct {
	// BaseURL of the agent service. Defaults to DefaultBaseURL.
	BaseURL string

	// HTTPClient used for requests. If nil, a client without a timeout is
	// used; a hung server blocks until the request context is cancelled.
	HTTPClient *http.Client

	// Version is reported in the User-Agent header.
	Version string

	// Logger for request diagnostics. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// StatusError is returned when the service answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}

// NewClient creates a new agent service client.
func NewClient(config ClientConfig) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	version := config.Version
	if version == "" {
		version = "dev"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		userAgent:  "agentchat/" + version,
		logger:     logger,
	}
}

// BaseURL returns the service base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListAgents fetches the agents available on the service, in server order.
// A missing "agents" field yields an empty list.
func (c *Client) ListAgents(ctx context.Context) ([]Agent, error) {
	var resp agentsResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/agents", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

// SendMessage posts one message to an agent and returns its replies in
// server order.
func (c *Client) SendMessage(ctx context.Context, agentID string, msg OutgoingMessage) ([]IncomingMessage, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(agentID) + "/message"

	var replies []IncomingMessage
	if err := c.do(ctx, http.MethodPost, endpoint, body, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// CloseIdleConnections releases pooled connections held by the HTTP client.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// do performs a request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug("agent service request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.ByteString("body", body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("agent service request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("agent service response",
		zap.Int("status", resp.StatusCode),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.ByteString("data", data))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > maxErrorBodyLen {
			snippet = snippet[:maxErrorBodyLen] + "..."
		}
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       snippet,
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
