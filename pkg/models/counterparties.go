package models

import (
	"time"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// CounterpartyKind classifies the owner of a counterparty account
type CounterpartyKind string

const (
	CounterpartyKindBusiness CounterpartyKind = "Business"
	CounterpartyKindPerson   CounterpartyKind = "Person"
	CounterpartyKindUnknown  CounterpartyKind = "Unknown"
)

// CounterpartyAttributes is the attribute set of a stored ACH counterparty
type CounterpartyAttributes struct {
	CreatedAt     time.Time        `json:"createdAt"`
	Name          string           `json:"name"`
	RoutingNumber string           `json:"routingNumber"`
	BankName      string           `json:"bank,omitempty"`
	AccountNumber string           `json:"accountNumber"`
	AccountType   AccountType      `json:"accountType"`
	Type          CounterpartyKind `json:"type"`
	Permissions   string           `json:"permissions,omitempty"`
	Tags          Tags             `json:"tags,omitempty"`
}

// CounterpartyResource is a stored ACH counterparty, referenced by linked payments
type CounterpartyResource = Resource[CounterpartyAttributes]

// CreateCounterpartyAttributes are the attributes of a new ACH counterparty
type CreateCounterpartyAttributes struct {
	Name           string           `json:"name"`
	RoutingNumber  string           `json:"routingNumber"`
	AccountNumber  string           `json:"accountNumber"`
	AccountType    AccountType      `json:"accountType"`
	Type           CounterpartyKind `json:"type"`
	Permissions    string           `json:"permissions,omitempty"`
	IdempotencyKey string           `json:"idempotencyKey,omitempty"`
	Tags           Tags             `json:"tags,omitempty"`
}

// NewCreateCounterpartyRequest validates and wraps a counterparty owned by the customer
func NewCreateCounterpartyRequest(customer Relationship, attrs CreateCounterpartyAttributes) (*CreateRequest[CreateCounterpartyAttributes], error) {
	details := Counterparty{
		RoutingNumber: attrs.RoutingNumber,
		AccountNumber: attrs.AccountNumber,
		AccountType:   attrs.AccountType,
		Name:          attrs.Name,
	}
	if err := details.Validate("attributes"); err != nil {
		return nil, err
	}
	switch attrs.Type {
	case CounterpartyKindBusiness, CounterpartyKindPerson, CounterpartyKindUnknown:
	default:
		return nil, pkgerrors.NewValidationError("attributes.type", "type must be Business, Person or Unknown")
	}
	if err := customer.Validate("relationships.customer"); err != nil {
		return nil, err
	}
	return &CreateRequest[CreateCounterpartyAttributes]{
		Type:          "achCounterparty",
		Attributes:    attrs,
		Relationships: map[string]Relationship{"customer": customer},
	}, nil
}
