package mocks

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/kevin07696/unit-client/pkg/transport"
)

// MockBackend is a mock implementation of transport.Backend for testing.
// Responses are raw JSON documents decoded into the caller's value.
type MockBackend struct {
	mu       sync.Mutex
	CallFunc func(ctx context.Context, req *transport.Request) (string, error)
	Calls    []*transport.Request
}

// NewMockBackend creates a mock backend answering every call with callFunc
func NewMockBackend(callFunc func(ctx context.Context, req *transport.Request) (string, error)) *MockBackend {
	return &MockBackend{
		CallFunc: callFunc,
		Calls:    []*transport.Request{},
	}
}

// Call captures the request and decodes the canned response into v.
// Like the HTTP backend, an empty response fails when v expects a document.
func (m *MockBackend) Call(ctx context.Context, req *transport.Request, v interface{}) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	var body string
	if m.CallFunc != nil {
		var err error
		if body, err = m.CallFunc(ctx, req); err != nil {
			return err
		}
	}
	if v == nil {
		return nil
	}
	if strings.TrimSpace(body) == "" {
		return pkgerrors.NewRequestError("EMPTY_RESPONSE", "expected a response document, got an empty body", pkgerrors.CategoryDecodeError, false, nil)
	}
	if u, ok := v.(json.Unmarshaler); ok {
		return u.UnmarshalJSON([]byte(body))
	}
	return encoding.Unmarshal([]byte(body), v)
}

// LastCall returns the most recent request, or nil
func (m *MockBackend) LastCall() *transport.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return nil
	}
	return m.Calls[len(m.Calls)-1]
}

// CallCount returns the number of captured calls
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
