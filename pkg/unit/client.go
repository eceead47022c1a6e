// Package unit is a typed client for the Unit banking API.
//
// A Client exposes one resource client per API family. Every method sends a
// single request and returns the decoded resource, a local *errors.ValidationError
// raised before any network call, or the API's errors document as *errors.APIError
// (check with IsError). Nothing is retried or cached.
package unit

import (
	"errors"
	"time"

	pkghttp "github.com/kevin07696/unit-client/pkg/http"
	"github.com/kevin07696/unit-client/pkg/logging"
	"github.com/kevin07696/unit-client/pkg/observability"
	"github.com/kevin07696/unit-client/pkg/ports"
	"github.com/kevin07696/unit-client/pkg/transport"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultBaseURL is the sandbox API
	DefaultBaseURL = "https://api.s.unit.sh"

	defaultTimeout = 30 * time.Second
)

// ErrMissingToken is returned by NewClient when no access token is configured
var ErrMissingToken = errors.New("unit: access token is required")

// ClientConfig configures a Client. Only Token is required.
type ClientConfig struct {
	Token   string
	BaseURL string

	// HTTPClient replaces the pooled default client
	HTTPClient ports.HTTPClient
	Timeout    time.Duration

	// RateLimit caps outgoing requests per second; zero disables it
	RateLimit float64
	RateBurst int

	// MetricsRegisterer enables Prometheus metrics when set
	MetricsRegisterer prometheus.Registerer

	// Backend replaces the HTTP transport entirely, mainly for tests
	Backend   transport.Backend
	Logger    ports.Logger
	UserAgent string
}

// Client groups the resource clients. It is safe for concurrent use.
type Client struct {
	Applications   *Applications
	Customers      *Customers
	Accounts       *Accounts
	Transactions   *Transactions
	Cards          *Cards
	Webhooks       *Webhooks
	CustomerTokens *CustomerTokens
	Counterparties *Counterparties
	Events         *Events
	Payments       *Payments
	Authorizations *Authorizations
}

// NewClient builds a Client. The HTTP stack is assembled inside out: pooled
// client, then metrics, then rate limiting.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	var paymentMetrics *observability.PaymentMetrics
	if cfg.MetricsRegisterer != nil {
		paymentMetrics = observability.NewPaymentMetrics(cfg.MetricsRegisterer)
	}

	backend := cfg.Backend
	if backend == nil {
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultBaseURL
		}
		backend = transport.NewBackend(transport.BackendConfiguration{
			BaseURL:    baseURL,
			HTTPClient: buildHTTPClient(cfg),
			Logger:     logger,
			UserAgent:  cfg.UserAgent,
		})
	}

	base := resource{backend: backend, token: cfg.Token, logger: logger}
	return &Client{
		Applications:   &Applications{resource: base.at("/applications")},
		Customers:      &Customers{resource: base.at("/customers")},
		Accounts:       &Accounts{resource: base.at("/accounts")},
		Transactions:   &Transactions{resource: base.at("/transactions")},
		Cards:          &Cards{resource: base.at("/cards")},
		Webhooks:       &Webhooks{resource: base.at("/webhooks"), metrics: paymentMetrics},
		CustomerTokens: &CustomerTokens{resource: base.at("/customers")},
		Counterparties: &Counterparties{resource: base.at("/counterparties")},
		Events:         &Events{resource: base.at("/events")},
		Payments:       &Payments{resource: base.at("/payments"), metrics: paymentMetrics},
		Authorizations: &Authorizations{resource: base.at("/authorizations")},
	}, nil
}

func buildHTTPClient(cfg ClientConfig) ports.HTTPClient {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = pkghttp.NewHTTPClient(pkghttp.UnitClientConfig(), timeout)
	}
	if cfg.MetricsRegisterer != nil {
		httpClient = observability.NewInstrumentedClient(httpClient, observability.NewClientMetrics(cfg.MetricsRegisterer))
	}
	if cfg.RateLimit > 0 {
		httpClient = pkghttp.NewRateLimitedClient(httpClient, cfg.RateLimit, cfg.RateBurst)
	}
	return httpClient
}
