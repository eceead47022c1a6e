package models

import (
	"time"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// AccountStatus is the state of a deposit account
type AccountStatus string

const (
	AccountStatusOpen   AccountStatus = "Open"
	AccountStatusClosed AccountStatus = "Closed"
)

// AccountCloseReason explains why an account is being closed
type AccountCloseReason string

const (
	AccountCloseByCustomer AccountCloseReason = "ByCustomer"
	AccountCloseFraud      AccountCloseReason = "Fraud"
)

// AccountAttributes is the attribute set of a deposit account. Balances are in cents.
type AccountAttributes struct {
	CreatedAt      time.Time     `json:"createdAt"`
	Name           string        `json:"name"`
	DepositProduct string        `json:"depositProduct"`
	RoutingNumber  string        `json:"routingNumber"`
	AccountNumber  string        `json:"accountNumber"`
	Currency       string        `json:"currency"`
	Balance        int64         `json:"balance"`
	Hold           int64         `json:"hold"`
	Available      int64         `json:"available"`
	Status         AccountStatus `json:"status"`
	CloseReason    string        `json:"closeReason,omitempty"`
	Tags           Tags          `json:"tags,omitempty"`
}

// Account is a deposit account resource
type Account = Resource[AccountAttributes]

// CreateDepositAccountAttributes are the attributes of a new deposit account
type CreateDepositAccountAttributes struct {
	DepositProduct string `json:"depositProduct"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	Tags           Tags   `json:"tags,omitempty"`
}

// NewCreateDepositAccountRequest opens a deposit account for the customer
func NewCreateDepositAccountRequest(customer Relationship, attrs CreateDepositAccountAttributes) (*CreateRequest[CreateDepositAccountAttributes], error) {
	if attrs.DepositProduct == "" {
		return nil, pkgerrors.NewValidationError("attributes.depositProduct", "deposit product is required")
	}
	if err := customer.Validate("relationships.customer"); err != nil {
		return nil, err
	}
	return &CreateRequest[CreateDepositAccountAttributes]{
		Type:          "depositAccount",
		Attributes:    attrs,
		Relationships: map[string]Relationship{"customer": customer},
	}, nil
}

// TagsAttributes is the attribute set of tag-only updates
type TagsAttributes struct {
	Tags Tags `json:"tags"`
}

// CloseAccountAttributes is the attribute set of an account close request
type CloseAccountAttributes struct {
	Reason AccountCloseReason `json:"reason"`
}

// NewCloseAccountRequest builds the body closing an account
func NewCloseAccountRequest(reason AccountCloseReason) (*CreateRequest[CloseAccountAttributes], error) {
	if reason != AccountCloseByCustomer && reason != AccountCloseFraud {
		return nil, pkgerrors.NewValidationError("attributes.reason", "reason must be ByCustomer or Fraud")
	}
	return &CreateRequest[CloseAccountAttributes]{
		Type:       "accountClose",
		Attributes: CloseAccountAttributes{Reason: reason},
	}, nil
}
