// Package transport performs the HTTP calls behind every resource client.
// It owns the wire envelope rules: bearer auth, JSON:API content type and
// telling an errors document apart from a resource document.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/kevin07696/unit-client/pkg/ports"
)

const (
	// ContentType is the media type of every request and response body
	ContentType = "application/vnd.api+json"

	// DefaultUserAgent is sent when the configuration leaves UserAgent empty
	DefaultUserAgent = "unit-go-client"

	defaultTimeout = 30 * time.Second
)

// Request describes a single API call
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   interface{}
	Token  string
}

// Backend sends a request and decodes the response document into v.
// A nil v discards the body; a non-nil v requires one. Failures come back as *errors.RequestError for
// transport problems and *errors.APIError for errors documents.
type Backend interface {
	Call(ctx context.Context, req *Request, v interface{}) error
}

// BackendConfiguration configures an HTTPBackend
type BackendConfiguration struct {
	BaseURL    string
	HTTPClient ports.HTTPClient
	Logger     ports.Logger
	UserAgent  string
}

// HTTPBackend is the Backend used against the live API
type HTTPBackend struct {
	baseURL    string
	httpClient ports.HTTPClient
	logger     ports.Logger
	userAgent  string
}

// NewBackend creates an HTTPBackend. A nil HTTPClient gets a plain client with a 30s timeout.
func NewBackend(cfg BackendConfiguration) *HTTPBackend {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPBackend{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
		userAgent:  userAgent,
	}
}

// Call implements Backend
func (b *HTTPBackend) Call(ctx context.Context, req *Request, v interface{}) error {
	var body io.Reader
	if req.Body != nil {
		payload, err := encoding.EncodeJSON(req.Body)
		if err != nil {
			return pkgerrors.NewRequestError("ENCODE_ERROR", "failed to encode request body", pkgerrors.CategoryInvalidRequest, false, err)
		}
		body = bytes.NewReader(payload)
	}

	endpoint := b.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return pkgerrors.NewRequestError("REQUEST_ERROR", "failed to create request", pkgerrors.CategoryInvalidRequest, false, err)
	}
	httpReq.Header.Set("Accept", ContentType)
	httpReq.Header.Set("User-Agent", b.userAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", ContentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	b.debug("calling unit api",
		ports.String("method", req.Method),
		ports.String("path", req.Path),
	)

	start := time.Now()
	httpResp, err := b.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return pkgerrors.NewRequestError("CANCELED", "request canceled", pkgerrors.CategoryNetworkError, false, ctx.Err())
		}
		b.warn("unit api unreachable",
			ports.String("method", req.Method),
			ports.String("path", req.Path),
			ports.Err(err),
		)
		return pkgerrors.NewRequestError("NETWORK_ERROR", "failed to reach the API", pkgerrors.CategoryNetworkError, true, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return pkgerrors.NewRequestError("READ_ERROR", "failed to read response body", pkgerrors.CategoryNetworkError, true, err)
	}

	b.debug("unit api responded",
		ports.String("method", req.Method),
		ports.String("path", req.Path),
		ports.Int("status", httpResp.StatusCode),
		ports.Duration("duration", time.Since(start)),
	)

	if httpResp.StatusCode >= 400 || pkgerrors.IsErrorPayload(respBody) {
		apiErr := pkgerrors.ParseAPIError(httpResp.StatusCode, respBody)
		b.warn("unit api returned errors",
			ports.String("method", req.Method),
			ports.String("path", req.Path),
			ports.Int("status", httpResp.StatusCode),
			ports.Int("errors", len(apiErr.Errors)),
		)
		return apiErr
	}

	if v == nil {
		return nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return pkgerrors.NewRequestError("EMPTY_RESPONSE", "expected a response document, got an empty body", pkgerrors.CategoryDecodeError, false, nil)
	}
	if err := decode(respBody, v); err != nil {
		return pkgerrors.NewRequestError("DECODE_ERROR", "failed to decode response", pkgerrors.CategoryDecodeError, false, err)
	}
	return nil
}

// decode calls custom unmarshalers directly so their error types survive
func decode(body []byte, v interface{}) error {
	if u, ok := v.(json.Unmarshaler); ok {
		return u.UnmarshalJSON(body)
	}
	return encoding.Unmarshal(body, v)
}

func (b *HTTPBackend) debug(msg string, fields ...ports.Field) {
	if b.logger != nil {
		b.logger.Debug(msg, fields...)
	}
}

func (b *HTTPBackend) warn(msg string, fields ...ports.Field) {
	if b.logger != nil {
		b.logger.Warn(msg, fields...)
	}
}
