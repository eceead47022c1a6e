package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PaymentMetrics tracks payment and webhook activity of the client
type PaymentMetrics struct {
	paymentsCreatedTotal  *prometheus.CounterVec
	paymentAmountCents    *prometheus.CounterVec
	paymentRejectedTotal  *prometheus.CounterVec
	webhookSignatureTotal *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment collectors with reg
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	factory := promauto.With(reg)
	return &PaymentMetrics{
		paymentsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unit_payments_created_total",
			Help: "Total payments created through the client",
		}, []string{
			"payment_type", // achPayment, bookPayment
			"status",       // status returned on creation
		}),

		paymentAmountCents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unit_payment_amount_cents_total",
			Help: "Total amount of created payments in cents",
		}, []string{
			"payment_type",
			"direction",
		}),

		paymentRejectedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unit_payment_requests_rejected_total",
			Help: "Payment requests rejected locally before reaching the API",
		}, []string{
			"operation", // create, update
		}),

		webhookSignatureTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unit_webhook_signature_checks_total",
			Help: "Webhook signature verifications",
		}, []string{
			"result", // valid, invalid
		}),
	}
}

// RecordPaymentCreated records a payment the API accepted
func (m *PaymentMetrics) RecordPaymentCreated(paymentType, status, direction string, amountCents int64) {
	if m == nil {
		return
	}
	m.paymentsCreatedTotal.WithLabelValues(paymentType, status).Inc()
	if direction == "" {
		direction = "none"
	}
	m.paymentAmountCents.WithLabelValues(paymentType, direction).Add(float64(amountCents))
}

// RecordPaymentRejected records a request that failed local validation
func (m *PaymentMetrics) RecordPaymentRejected(operation string) {
	if m == nil {
		return
	}
	m.paymentRejectedTotal.WithLabelValues(operation).Inc()
}

// RecordWebhookSignature records the outcome of a signature check
func (m *PaymentMetrics) RecordWebhookSignature(valid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.webhookSignatureTotal.WithLabelValues(result).Inc()
}

// EventMetrics tracks the event watcher
type EventMetrics struct {
	eventsReceivedTotal *prometheus.CounterVec
	pollErrorsTotal     prometheus.Counter
	lastEventTimestamp  prometheus.Gauge
}

// NewEventMetrics registers the event watcher collectors with reg
func NewEventMetrics(reg prometheus.Registerer) *EventMetrics {
	factory := promauto.With(reg)
	return &EventMetrics{
		eventsReceivedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "unit_events_received_total",
			Help: "Events delivered to the watcher handler",
		}, []string{"event_type"}),

		pollErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "unit_event_poll_errors_total",
			Help: "Failed event list calls",
		}),

		lastEventTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "unit_event_last_created_timestamp_seconds",
			Help: "Creation time of the newest event seen",
		}),
	}
}

// RecordEvent records an event handed to the handler
func (m *EventMetrics) RecordEvent(eventType string, createdAt time.Time) {
	if m == nil {
		return
	}
	m.eventsReceivedTotal.WithLabelValues(eventType).Inc()
	m.lastEventTimestamp.Set(float64(createdAt.Unix()))
}

// RecordPollError records a failed poll
func (m *EventMetrics) RecordPollError() {
	if m == nil {
		return
	}
	m.pollErrorsTotal.Inc()
}
