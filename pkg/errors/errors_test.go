package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsErrorPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "single error", body: `{"errors":[{"title":"Bad Request","status":"400"}]}`, want: true},
		{name: "errors beside data", body: `{"data":null,"errors":[{"title":"x"}]}`, want: true},
		{name: "absent key", body: `{"data":{"id":"1","type":"achPayment"}}`},
		{name: "empty object", body: `{}`},
		{name: "empty array", body: `{"errors":[]}`},
		{name: "null errors", body: `{"errors":null}`},
		{name: "string errors", body: `{"errors":"x"}`},
		{name: "object errors", body: `{"errors":{"title":"x"}}`},
		{name: "top level array", body: `[{"title":"x"}]`},
		{name: "top level string", body: `"errors"`},
		{name: "null", body: `null`},
		{name: "empty body", body: ``},
		{name: "malformed", body: `{"errors":[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsErrorPayload([]byte(tt.body)))
		})
	}
}

func TestParseAPIError(t *testing.T) {
	t.Run("errors document", func(t *testing.T) {
		apiErr := ParseAPIError(400, []byte(`{"errors":[{"title":"Invalid","detail":"amount must be positive","source":{"pointer":"/data/attributes/amount"}}]}`))

		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, 400, apiErr.StatusCode)
		assert.Equal(t, "amount must be positive", apiErr.Errors[0].Detail)
		require.NotNil(t, apiErr.Errors[0].Source)
		assert.Equal(t, "/data/attributes/amount", apiErr.Errors[0].Source.Pointer)
		assert.Equal(t, "unit: status=400 Invalid: amount must be positive", apiErr.Error())
	})

	t.Run("plain text body", func(t *testing.T) {
		apiErr := ParseAPIError(502, []byte("  Bad Gateway\n"))

		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "Bad Gateway", apiErr.Errors[0].Title)
		assert.Equal(t, "502", apiErr.Errors[0].Status)
	})

	t.Run("empty errors array", func(t *testing.T) {
		apiErr := ParseAPIError(500, []byte(`{"errors":[]}`))

		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, `{"errors":[]}`, apiErr.Errors[0].Title)
	})

	t.Run("empty body", func(t *testing.T) {
		apiErr := ParseAPIError(503, nil)

		require.Len(t, apiErr.Errors, 1)
		assert.Equal(t, "unexpected status 503", apiErr.Errors[0].Title)
		assert.Equal(t, "503", apiErr.Errors[0].Status)
		assert.True(t, IsError(apiErr))
	})
}

func TestIsError(t *testing.T) {
	apiErr := &APIError{StatusCode: 404, Errors: []ErrorItem{{Title: "Not Found"}}}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "api error", err: apiErr, want: true},
		{name: "wrapped api error", err: fmt.Errorf("get payment: %w", apiErr), want: true},
		{name: "api error without items", err: &APIError{StatusCode: 500}},
		{name: "validation error", err: NewValidationError("data.type", "unknown type")},
		{name: "request error", err: NewRequestError("NETWORK_ERROR", "dial failed", CategoryNetworkError, true, nil)},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsError(tt.err))
		})
	}
}

func TestRequestError(t *testing.T) {
	cause := NewValidationError("data.attributes.amount", "must be a whole number")
	err := NewRequestError("DECODE_ERROR", "failed to decode response", CategoryDecodeError, false, cause)

	assert.Equal(t, "DECODE_ERROR: failed to decode response: validation error on field 'data.attributes.amount': must be a whole number", err.Error())
	assert.True(t, IsValidationError(err))
	assert.False(t, IsError(err))

	var vErr *ValidationError
	require.True(t, stderrors.As(err, &vErr))
	assert.Equal(t, "data.attributes.amount", vErr.Field)

	bare := NewRequestError("EMPTY_RESPONSE", "no body", CategoryDecodeError, false, nil)
	assert.Equal(t, "EMPTY_RESPONSE: no body", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
