// Package datasource fetches historical fixtures and odds from
// external providers and normalizes them into match records.
package datasource

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPClientConfig holds tuning for provider HTTP clients.
type HTTPClientConfig struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	RateLimit    float64 // requests per second
}

// DefaultHTTPClientConfig returns recommended defaults. The rate limit
// matches the free tiers of the fixture providers.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryWaitMin: time.Second,
		RetryWaitMax: 30 * time.Second,
		RateLimit:    0.15, // ~10 requests per minute
	}
}

// ProviderClient wraps retryablehttp.Client with client-side rate
// limiting for polite use of fixture and odds APIs.
type ProviderClient struct {
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *logrus.Logger
}

// NewProviderClient creates a rate-limited, retrying HTTP client.
func NewProviderClient(cfg HTTPClientConfig, logger *logrus.Logger) *ProviderClient {
	if logger == nil {
		logger = logrus.New()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy()
	retryClient.Logger = nil

	return &ProviderClient{
		client:  retryClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		logger:  logger,
	}
}

// Do executes a request after waiting for the rate limiter.
func (c *ProviderClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(retryReq.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Get executes a GET request with the given headers.
func (c *ProviderClient) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return c.Do(ctx, req)
}

// Close releases idle connections held by the client.
func (c *ProviderClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// retryPolicy retries network errors, rate limiting and server errors;
// other client errors fail immediately.
func retryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return true, err
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return true, nil
		}
		return false, nil
	}
}
