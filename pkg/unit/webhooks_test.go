package unit

import (
	"context"
	"net/http"
	"testing"

	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhooks(t *testing.T) {
	client, backend := setupBackendTest(t, `{"data":{"id":"1","type":"webhook","attributes":{"label":"payments","url":"https://example.com/hooks","status":"Enabled","contentType":"JsonAPI","token":"secret"}}}`)
	ctx := context.Background()

	webhook, err := client.Webhooks.Create(ctx, models.CreateWebhookAttributes{
		Label:       "payments",
		URL:         "https://example.com/hooks",
		Token:       "secret",
		ContentType: models.WebhookContentTypeJSONAPI,
	})
	require.NoError(t, err)
	assert.Equal(t, models.WebhookStatusEnabled, webhook.Attributes.Status)

	_, err = client.Webhooks.Disable(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "/webhooks/1/disable", backend.LastCall().Path)

	_, err = client.Webhooks.Enable(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "/webhooks/1/enable", backend.LastCall().Path)

	_, err = client.Webhooks.Update(ctx, "1", models.PatchWebhookAttributes{Label: "all events"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, backend.LastCall().Method)

	_, err = client.Webhooks.Delete(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, backend.LastCall().Method)
}

func TestWebhookSignature(t *testing.T) {
	payload := []byte(`{"data":[{"id":"1","type":"payment.sent"}]}`)
	token := "webhook-secret"

	signature := CalculateWebhookSignature(payload, token)
	assert.NotEmpty(t, signature)
	assert.True(t, VerifyWebhookSignature(payload, signature, token))

	assert.False(t, VerifyWebhookSignature(payload, signature, "other-secret"))
	assert.False(t, VerifyWebhookSignature([]byte(`{"data":[]}`), signature, token))
	assert.False(t, VerifyWebhookSignature(payload, "", token))
	assert.False(t, VerifyWebhookSignature(payload, signature, ""))

	client, _ := setupBackendTest(t, "")
	assert.True(t, client.Webhooks.VerifySignature(payload, signature, token))
}

func TestCalculateWebhookSignature_KnownValue(t *testing.T) {
	// HMAC-SHA1("The quick brown fox jumps over the lazy dog", "key")
	signature := CalculateWebhookSignature([]byte("The quick brown fox jumps over the lazy dog"), "key")
	assert.Equal(t, "3nybhbi3iqa8ino29wqQcBydtNk=", signature)
}
