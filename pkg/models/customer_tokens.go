package models

import pkgerrors "github.com/kevin07696/unit-client/pkg/errors"

const maxTokenExpiresIn = 86400

// VerificationChannel is how a customer receives a verification code
type VerificationChannel string

const (
	VerificationChannelSMS  VerificationChannel = "sms"
	VerificationChannelCall VerificationChannel = "call"
)

// CreateCustomerTokenAttributes request a customer bearer token. Scopes that move money
// require the verification token and code from a prior verification.
type CreateCustomerTokenAttributes struct {
	Scope             string `json:"scope"`
	VerificationToken string `json:"verificationToken,omitempty"`
	VerificationCode  string `json:"verificationCode,omitempty"`
	ExpiresIn         int    `json:"expiresIn,omitempty"`
}

// NewCreateCustomerTokenRequest validates and wraps a token request
func NewCreateCustomerTokenRequest(attrs CreateCustomerTokenAttributes) (*CreateRequest[CreateCustomerTokenAttributes], error) {
	if attrs.Scope == "" {
		return nil, pkgerrors.NewValidationError("attributes.scope", "scope is required")
	}
	if (attrs.VerificationToken == "") != (attrs.VerificationCode == "") {
		return nil, pkgerrors.NewValidationError("attributes.verificationCode", "verification token and code must be supplied together")
	}
	if attrs.ExpiresIn < 0 || attrs.ExpiresIn > maxTokenExpiresIn {
		return nil, pkgerrors.NewValidationError("attributes.expiresIn", "expiresIn must be between 0 and 86400 seconds")
	}
	return &CreateRequest[CreateCustomerTokenAttributes]{Type: "customerToken", Attributes: attrs}, nil
}

// CustomerTokenAttributes is the issued bearer token
type CustomerTokenAttributes struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// CustomerToken is a customerBearerToken resource
type CustomerToken = Resource[CustomerTokenAttributes]

// CreateTokenVerificationAttributes request a verification code for the customer
type CreateTokenVerificationAttributes struct {
	Channel VerificationChannel `json:"channel"`
}

// NewCreateTokenVerificationRequest validates and wraps a verification request
func NewCreateTokenVerificationRequest(channel VerificationChannel) (*CreateRequest[CreateTokenVerificationAttributes], error) {
	if channel != VerificationChannelSMS && channel != VerificationChannelCall {
		return nil, pkgerrors.NewValidationError("attributes.channel", "channel must be sms or call")
	}
	return &CreateRequest[CreateTokenVerificationAttributes]{
		Type:       "customerTokenVerification",
		Attributes: CreateTokenVerificationAttributes{Channel: channel},
	}, nil
}

// TokenVerificationAttributes carries the token that pairs with the code sent to the customer
type TokenVerificationAttributes struct {
	VerificationToken string `json:"verificationToken"`
}

// TokenVerification is a customerTokenVerification resource
type TokenVerification = Resource[TokenVerificationAttributes]
