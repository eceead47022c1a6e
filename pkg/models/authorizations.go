package models

import "time"

// AuthorizationStatus is the state of a card authorization
type AuthorizationStatus string

const (
	AuthorizationStatusAuthorized AuthorizationStatus = "Authorized"
	AuthorizationStatusCompleted  AuthorizationStatus = "Completed"
	AuthorizationStatusCanceled   AuthorizationStatus = "Canceled"
	AuthorizationStatusDeclined   AuthorizationStatus = "Declined"
)

// Merchant describes where a card was used
type Merchant struct {
	Name     string `json:"name"`
	Type     int    `json:"type"`
	Category string `json:"category,omitempty"`
	Location string `json:"location,omitempty"`
}

// AuthorizationAttributes is the attribute set of a card authorization. Amount is in cents.
type AuthorizationAttributes struct {
	CreatedAt       time.Time           `json:"createdAt"`
	Amount          int64               `json:"amount"`
	CardLast4Digits string              `json:"cardLast4Digits"`
	Status          AuthorizationStatus `json:"status"`
	Merchant        Merchant            `json:"merchant"`
	Recurring       bool                `json:"recurring"`
	Tags            Tags                `json:"tags,omitempty"`
}

// Authorization is a card authorization resource
type Authorization = Resource[AuthorizationAttributes]
