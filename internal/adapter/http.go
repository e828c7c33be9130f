package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"go.uber.org/zap"

	"github.com/gitcoinco/passport-scorer/internal/logger"
)

// ErrNotFound indicates the requested resource does not exist (HTTP 404)
var ErrNotFound = errors.New("resource not found")

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Get performs a GET request and unmarshals the response into result
	Get(ctx context.Context, url string, result interface{}) error
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry for rate limiting
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, req *http.Request) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", req.URL.String()))
			}
		}()

		// Handle rate limiting - retry with backoff
		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("rate limited, retrying with backoff", zap.String("url", req.URL.String()))
			return fmt.Errorf("rate limited (429), retrying")
		}

		// Not-found is a permanent, typed error so callers can branch on it
		if resp.StatusCode == http.StatusNotFound {
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, req.URL.String()))
		}

		// Other non-OK status codes are permanent errors
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return backoff.Permanent(fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body)))
		}

		// Read the response body
		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		return nil
	}

	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 1 * time.Minute // Total retry duration
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	// Execute with retry and context support
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}

// Get performs a GET request and unmarshals the response into result
// Implements exponential backoff retry for rate limiting (429) responses
func (c *RealHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	respBody, err := c.doRequestWithRetry(ctx, req)
	if err != nil {
		return err
	}

	// Decode the response
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
