package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client is the outbound chat-completions client shared by both
// services: the gateway uses it against the provider with a bearer
// key, the processor against the gateway without one. It owns the
// only long-lived connection pool in the process and is safe for
// unlimited concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	referer    string
	title      string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds configuration for the client.
type Config struct {
	BaseURL string
	APIKey  string        // empty means no Authorization header
	Referer string        // OpenRouter compatibility header, optional
	Title   string        // OpenRouter compatibility header, optional
	Timeout time.Duration // Default: 120s
}

// New creates a new client.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	// Tuned for connection reuse across concurrent requests
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		referer: cfg.Referer,
		title:   cfg.Title,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		logger: logger,
	}
}

// CreateChatCompletion posts payload to {base}/chat/completions and
// returns the raw response body on success. Failures are classified:
// non-2xx becomes *StatusError, transport errors become ErrTimeout or
// ErrUnreachable. No retries.
func (c *Client) CreateChatCompletion(ctx context.Context, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Upstream API error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("response", string(respBody)))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
