package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kevin07696/unit-client/pkg/encoding"
)

// ErrorCategory represents the category of a failed call for handling
type ErrorCategory string

const (
	CategoryNetworkError   ErrorCategory = "network_error"
	CategorySystemError    ErrorCategory = "system_error"
	CategoryInvalidRequest ErrorCategory = "invalid_request"
	CategoryDecodeError    ErrorCategory = "decode_error"
)

// RequestError represents a failure to complete a call to the API at the transport level.
// A request that reached the API and came back with an errors document is an *APIError instead.
type RequestError struct {
	Code        string
	Message     string
	IsRetriable bool
	Category    ErrorCategory
	Err         error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *RequestError) Unwrap() error {
	return e.Err
}

// NewRequestError creates a new request error
func NewRequestError(code, message string, category ErrorCategory, retriable bool, err error) *RequestError {
	return &RequestError{
		Code:        code,
		Message:     message,
		Category:    category,
		IsRetriable: retriable,
		Err:         err,
	}
}

// ValidationError represents a request or resource that violates the type contract.
// It is always produced locally, before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if an error is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return stderrors.As(err, &vErr)
}

// ErrorSource points at the part of the request that caused an error
type ErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

// ErrorItem is a single entry of the errors array returned by the API
type ErrorItem struct {
	Title  string                 `json:"title"`
	Status string                 `json:"status,omitempty"`
	Detail string                 `json:"detail,omitempty"`
	Code   string                 `json:"code,omitempty"`
	Source *ErrorSource           `json:"source,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// APIError is the structured `{ "errors": [...] }` document returned by the API
type APIError struct {
	Errors     []ErrorItem `json:"errors"`
	StatusCode int         `json:"-"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("unit: status=%d", e.StatusCode)
	}
	titles := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		if item.Detail != "" {
			titles = append(titles, item.Title+": "+item.Detail)
			continue
		}
		titles = append(titles, item.Title)
	}
	return fmt.Sprintf("unit: status=%d %s", e.StatusCode, strings.Join(titles, "; "))
}

// IsError reports whether err carries a remote errors document with at least one entry.
// Local validation and transport failures are not remote errors.
func IsError(err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return len(apiErr.Errors) > 0
	}
	return false
}

// IsErrorPayload reports whether a raw response body is an errors document.
// The top level must be an object whose "errors" member is a non-empty array; an absent
// key and an empty array are both treated as a regular payload.
func IsErrorPayload(body []byte) bool {
	var doc struct {
		Errors []encoding.RawMessage `json:"errors"`
	}
	if err := encoding.Unmarshal(body, &doc); err != nil {
		return false
	}
	return len(doc.Errors) > 0
}

// ParseAPIError decodes an errors document. When the body is not a usable errors document
// a single item is synthesized from the status code so the caller still gets an *APIError.
func ParseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if err := encoding.Unmarshal(body, apiErr); err != nil || len(apiErr.Errors) == 0 {
		apiErr.Errors = []ErrorItem{{
			Title:  strings.TrimSpace(string(body)),
			Status: fmt.Sprintf("%d", statusCode),
		}}
		if apiErr.Errors[0].Title == "" {
			apiErr.Errors[0].Title = fmt.Sprintf("unexpected status %d", statusCode)
		}
	}
	apiErr.StatusCode = statusCode
	return apiErr
}
