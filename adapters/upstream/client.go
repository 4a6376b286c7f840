// Package upstream provides the HTTP fetcher used to call the seats.aero API.
package upstream

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"award-sync/core/endpoint"
	"award-sync/internal/errors"
	"award-sync/internal/logging"
)

// RequestIDHeader carries the request ID to the upstream service.
const RequestIDHeader = "X-Request-ID"

// maxSnippet bounds the body excerpt attached to upstream errors.
const maxSnippet = 512

// Config configures the client
type Config struct {
	// Timeout for a whole request, including reading the body
	Timeout time.Duration

	// UserAgent sent with every request
	UserAgent string

	// MaxBodyBytes caps the response size; 0 means unlimited
	MaxBodyBytes int64
}

// DefaultConfig returns default client configuration
func DefaultConfig() *Config {
	return &Config{
		Timeout:      30 * time.Second,
		UserAgent:    "award-sync",
		MaxBodyBytes: 64 << 20,
	}
}

// Client is an endpoint.Fetcher backed by net/http.
type Client struct {
	config *Config
	http   *http.Client
	logger *zap.Logger
}

// NewClient creates a new upstream client
func NewClient(config *Config, logger *zap.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logging.Or(logger).Named("upstream"),
	}
}

// Fetch performs one request. It does not retry.
func (c *Client) Fetch(ctx context.Context, req endpoint.FetchRequest) (*endpoint.FetchResponse, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInput, "build request", err).WithContext("url", req.URL)
	}

	requestID, ok := endpoint.RequestID(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}

	start := time.Now()
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("url", req.URL),
		zap.String("request_id", requestID),
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("upstream request failed", append(fields,
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)...)
		return nil, errors.Network(method+" "+req.URL, err).WithContext("request_id", requestID)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if c.config.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, c.config.MaxBodyBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeNetwork, err, "read response body from %s", req.URL).
			WithContext("request_id", requestID)
	}
	tooLarge := c.config.MaxBodyBytes > 0 && int64(len(data)) > c.config.MaxBodyBytes

	fields = append(fields,
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("upstream returned error status", fields...)
		return nil, errors.Upstream(resp.StatusCode, req.URL).
			WithContext("request_id", requestID).
			WithContext("body", snippet(data))
	}

	if tooLarge {
		c.logger.Warn("upstream response too large", append(fields, zap.Int64("limit", c.config.MaxBodyBytes))...)
		return nil, errors.Newf(errors.TypeUpstream, "response from %s exceeds %d bytes", req.URL, c.config.MaxBodyBytes).
			WithContext("request_id", requestID).
			WithContext("limit", c.config.MaxBodyBytes)
	}

	c.logger.Debug("upstream request", fields...)
	return &endpoint.FetchResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}
