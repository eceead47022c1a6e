package ports

import "net/http"

// HTTPClient defines the interface for making HTTP requests
// This allows us to mock HTTP calls in tests and to stack rate limiting or metrics around the real client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
