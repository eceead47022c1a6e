package unit

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/pkg/observability"
)

// SignatureHeader carries the signature of a webhook delivery
const SignatureHeader = "X-Unit-Signature"

// Webhooks manages webhook subscriptions and verifies deliveries
type Webhooks struct {
	resource
	metrics *observability.PaymentMetrics
}

// Create subscribes a webhook
func (w *Webhooks) Create(ctx context.Context, attrs models.CreateWebhookAttributes) (*models.Webhook, error) {
	req, err := models.NewCreateWebhookRequest(attrs)
	if err != nil {
		return nil, err
	}
	return sendResource[models.WebhookAttributes](ctx, w.resource, http.MethodPost, "", req)
}

// Get fetches a webhook
func (w *Webhooks) Get(ctx context.Context, id string) (*models.Webhook, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.WebhookAttributes](ctx, w.resource, idPath(id), nil)
}

// List returns a page of webhooks
func (w *Webhooks) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Webhook], error) {
	return listResources[models.WebhookAttributes](ctx, w.resource, "", params.Values())
}

// Update changes the label, url, token or content type of a webhook
func (w *Webhooks) Update(ctx context.Context, id string, attrs models.PatchWebhookAttributes) (*models.Webhook, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	req, err := models.NewPatchWebhookRequest(attrs)
	if err != nil {
		return nil, err
	}
	return sendResource[models.WebhookAttributes](ctx, w.resource, http.MethodPatch, idPath(id), req)
}

// Delete removes a webhook
func (w *Webhooks) Delete(ctx context.Context, id string) (*models.Webhook, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return sendResource[models.WebhookAttributes](ctx, w.resource, http.MethodDelete, idPath(id), nil)
}

// Enable resumes deliveries
func (w *Webhooks) Enable(ctx context.Context, id string) (*models.Webhook, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return sendResource[models.WebhookAttributes](ctx, w.resource, http.MethodPost, idPath(id, "enable"), nil)
}

// Disable pauses deliveries
func (w *Webhooks) Disable(ctx context.Context, id string) (*models.Webhook, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return sendResource[models.WebhookAttributes](ctx, w.resource, http.MethodPost, idPath(id, "disable"), nil)
}

// VerifySignature checks a delivery's X-Unit-Signature against the webhook token
func (w *Webhooks) VerifySignature(payload []byte, signature, token string) bool {
	valid := VerifyWebhookSignature(payload, signature, token)
	w.metrics.RecordWebhookSignature(valid)
	return valid
}

// CalculateWebhookSignature returns base64(HMAC-SHA1(payload, token))
func CalculateWebhookSignature(payload []byte, token string) string {
	h := hmac.New(sha1.New, []byte(token))
	h.Write(payload)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// VerifyWebhookSignature compares signature with the expected one in constant time
func VerifyWebhookSignature(payload []byte, signature, token string) bool {
	if token == "" || signature == "" {
		return false
	}
	expected := CalculateWebhookSignature(payload, token)
	return hmac.Equal([]byte(expected), []byte(signature))
}
