package models

import (
	"net/url"
	"time"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// WebhookStatus tells whether events are delivered to the webhook
type WebhookStatus string

const (
	WebhookStatusEnabled  WebhookStatus = "Enabled"
	WebhookStatusDisabled WebhookStatus = "Disabled"
)

// WebhookContentType is the payload format delivered to the webhook
type WebhookContentType string

const (
	WebhookContentTypeJSON    WebhookContentType = "Json"
	WebhookContentTypeJSONAPI WebhookContentType = "JsonAPI"
)

// WebhookAttributes is the attribute set of a webhook subscription
type WebhookAttributes struct {
	CreatedAt   time.Time          `json:"createdAt"`
	Label       string             `json:"label"`
	URL         string             `json:"url"`
	Status      WebhookStatus      `json:"status"`
	ContentType WebhookContentType `json:"contentType"`
	Token       string             `json:"token"`
}

// Webhook is a webhook subscription resource
type Webhook = Resource[WebhookAttributes]

// CreateWebhookAttributes are the attributes of a new webhook. Token is the secret used to sign deliveries.
type CreateWebhookAttributes struct {
	Label       string             `json:"label"`
	URL         string             `json:"url"`
	Token       string             `json:"token"`
	ContentType WebhookContentType `json:"contentType"`
}

// NewCreateWebhookRequest validates and wraps a new webhook
func NewCreateWebhookRequest(attrs CreateWebhookAttributes) (*CreateRequest[CreateWebhookAttributes], error) {
	if attrs.Label == "" {
		return nil, pkgerrors.NewValidationError("attributes.label", "label is required")
	}
	if err := validateWebhookURL(attrs.URL); err != nil {
		return nil, err
	}
	if attrs.Token == "" {
		return nil, pkgerrors.NewValidationError("attributes.token", "token is required")
	}
	if err := attrs.ContentType.Validate("attributes.contentType"); err != nil {
		return nil, err
	}
	return &CreateRequest[CreateWebhookAttributes]{Type: "webhook", Attributes: attrs}, nil
}

// PatchWebhookAttributes are the mutable attributes of a webhook
type PatchWebhookAttributes struct {
	Label       string             `json:"label,omitempty"`
	URL         string             `json:"url,omitempty"`
	Token       string             `json:"token,omitempty"`
	ContentType WebhookContentType `json:"contentType,omitempty"`
}

// NewPatchWebhookRequest validates and wraps a webhook update
func NewPatchWebhookRequest(attrs PatchWebhookAttributes) (*CreateRequest[PatchWebhookAttributes], error) {
	if attrs.URL != "" {
		if err := validateWebhookURL(attrs.URL); err != nil {
			return nil, err
		}
	}
	if attrs.ContentType != "" {
		if err := attrs.ContentType.Validate("attributes.contentType"); err != nil {
			return nil, err
		}
	}
	return &CreateRequest[PatchWebhookAttributes]{Type: "webhook", Attributes: attrs}, nil
}

// Validate accepts Json and JsonAPI
func (c WebhookContentType) Validate(field string) error {
	if c != WebhookContentTypeJSON && c != WebhookContentTypeJSONAPI {
		return pkgerrors.NewValidationError(field, "content type must be Json or JsonAPI")
	}
	return nil
}

func validateWebhookURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return pkgerrors.NewValidationError("attributes.url", "url must be an absolute http(s) URL")
	}
	return nil
}
