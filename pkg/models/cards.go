package models

import (
	"time"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// CardType is the kind of card resource
type CardType string

const (
	CardTypeIndividualDebit        CardType = "individualDebitCard"
	CardTypeBusinessDebit          CardType = "businessDebitCard"
	CardTypeIndividualVirtualDebit CardType = "individualVirtualDebitCard"
	CardTypeBusinessVirtualDebit   CardType = "businessVirtualDebitCard"
)

// CardStatus is the state of a card
type CardStatus string

const (
	CardStatusActive           CardStatus = "Active"
	CardStatusInactive         CardStatus = "Inactive"
	CardStatusStolen           CardStatus = "Stolen"
	CardStatusLost             CardStatus = "Lost"
	CardStatusFrozen           CardStatus = "Frozen"
	CardStatusClosedByCustomer CardStatus = "ClosedByCustomer"
	CardStatusSuspectedFraud   CardStatus = "SuspectedFraud"
)

// CardAttributes is the attribute set of a card
type CardAttributes struct {
	CreatedAt       time.Time  `json:"createdAt"`
	Last4Digits     string     `json:"last4Digits"`
	ExpirationDate  string     `json:"expirationDate"`
	Status          CardStatus `json:"status"`
	ShippingAddress *Address   `json:"shippingAddress,omitempty"`
	Tags            Tags       `json:"tags,omitempty"`
}

// Card is a debit card resource
type Card = Resource[CardAttributes]

// CreateCardAttributes are the attributes of a new card
type CreateCardAttributes struct {
	ShippingAddress *Address `json:"shippingAddress,omitempty"`
	IdempotencyKey  string   `json:"idempotencyKey,omitempty"`
	Tags            Tags     `json:"tags,omitempty"`
}

// NewCreateCardRequest issues a card of the given type on the account
func NewCreateCardRequest(cardType CardType, account Relationship, attrs CreateCardAttributes) (*CreateRequest[CreateCardAttributes], error) {
	switch cardType {
	case CardTypeIndividualDebit, CardTypeBusinessDebit, CardTypeIndividualVirtualDebit, CardTypeBusinessVirtualDebit:
	default:
		return nil, pkgerrors.NewValidationError("type", "unknown card type "+string(cardType))
	}
	if err := account.Validate("relationships.account"); err != nil {
		return nil, err
	}
	if attrs.ShippingAddress != nil {
		if err := attrs.ShippingAddress.Validate("attributes.shippingAddress"); err != nil {
			return nil, err
		}
	}
	return &CreateRequest[CreateCardAttributes]{
		Type:          string(cardType),
		Attributes:    attrs,
		Relationships: map[string]Relationship{"account": account},
	}, nil
}
