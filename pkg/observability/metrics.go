package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/kevin07696/unit-client/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ClientMetrics records outgoing API calls
type ClientMetrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
}

// NewClientMetrics registers the API client collectors with reg
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	factory := promauto.With(reg)
	return &ClientMetrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "unit_api_requests_total",
				Help: "Total number of requests sent to the Unit API",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "unit_api_request_duration_seconds",
				Help:    "Duration of Unit API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "unit_api_requests_in_flight",
				Help: "Number of Unit API requests currently awaiting a response",
			},
		),
	}
}

// InstrumentedClient records metrics around every request of the wrapped client
type InstrumentedClient struct {
	next    ports.HTTPClient
	metrics *ClientMetrics
}

// NewInstrumentedClient wraps next
func NewInstrumentedClient(next ports.HTTPClient, metrics *ClientMetrics) *InstrumentedClient {
	return &InstrumentedClient{next: next, metrics: metrics}
}

// Do forwards the request and records its outcome. Transport failures are counted with status "error".
func (c *InstrumentedClient) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	c.metrics.requestsInFlight.Inc()
	defer c.metrics.requestsInFlight.Dec()

	resp, err := c.next.Do(req)

	route := Route(req.URL.Path)
	c.metrics.requestDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	c.metrics.requestsTotal.WithLabelValues(req.Method, route, status).Inc()

	return resp, err
}

// routeSegments are the fixed path segments of the API; anything else is an identifier
var routeSegments = map[string]struct{}{
	"applications": {}, "customers": {}, "accounts": {}, "transactions": {},
	"cards": {}, "webhooks": {}, "counterparties": {}, "events": {},
	"payments": {}, "authorizations": {}, "token": {}, "verification": {},
	"freeze": {}, "unfreeze": {}, "close": {}, "enable": {}, "disable": {},
}

// Route collapses identifiers in path so the route label stays low-cardinality,
// e.g. /accounts/555/transactions/7 becomes /accounts/:id/transactions/:id
func Route(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, ok := routeSegments[segment]; !ok {
			segments[i] = ":id"
		}
	}
	return "/" + strings.Join(segments, "/")
}
