package http

import (
	"net/http"

	"github.com/kevin07696/unit-client/pkg/ports"
	"golang.org/x/time/rate"
)

// RateLimitedClient holds outgoing requests to a steady rate so a busy caller
// stays under the API's request quota. Waiting honours the request context.
type RateLimitedClient struct {
	next    ports.HTTPClient
	limiter *rate.Limiter
}

// NewRateLimitedClient wraps next with a token bucket of requestsPerSecond and burst.
// A non-positive rate disables limiting.
func NewRateLimitedClient(next ports.HTTPClient, requestsPerSecond float64, burst int) *RateLimitedClient {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Do waits for a token and forwards the request
func (c *RateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return c.next.Do(req)
}
