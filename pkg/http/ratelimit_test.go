package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kevin07696/unit-client/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitedClient_Forwards(t *testing.T) {
	next := mocks.NewMockHTTPClient(nil)
	client := NewRateLimitedClient(next, 100, 5)

	for i := 0; i < 5; i++ {
		req, err := http.NewRequest(http.MethodGet, "https://api.s.unit.sh/accounts", nil)
		require.NoError(t, err)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, 5, next.CallCount())
}

func TestRateLimitedClient_ContextDeadline(t *testing.T) {
	next := mocks.NewMockHTTPClient(nil)
	client := NewRateLimitedClient(next, 0.001, 1)

	first, _ := http.NewRequest(http.MethodGet, "https://api.s.unit.sh/accounts", nil)
	resp, err := client.Do(first)
	require.NoError(t, err)
	resp.Body.Close()

	// the bucket is empty and refills far slower than the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	second, _ := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.s.unit.sh/accounts", nil)

	_, err = client.Do(second)
	assert.Error(t, err)
	assert.Equal(t, 1, next.CallCount())
}

func TestRateLimitedClient_Unlimited(t *testing.T) {
	next := mocks.NewMockHTTPClient(nil)
	client := NewRateLimitedClient(next, 0, 0)

	for i := 0; i < 50; i++ {
		req, _ := http.NewRequest(http.MethodGet, "https://api.s.unit.sh/accounts", nil)
		resp, err := client.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.Equal(t, 50, next.CallCount())
}

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(UnitClientConfig(), 15*time.Second)
	assert.Equal(t, 15*time.Second, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 50, transport.MaxIdleConnsPerHost)
	assert.True(t, transport.ForceAttemptHTTP2)
}
