package models

import (
	"strconv"
	"time"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// CustomerAttributes covers both individual and business customers
type CustomerAttributes struct {
	CreatedAt       time.Time        `json:"createdAt"`
	FullName        *FullName        `json:"fullName,omitempty"`
	Name            string           `json:"name,omitempty"`
	DBA             string           `json:"dba,omitempty"`
	Email           string           `json:"email,omitempty"`
	Phone           *Phone           `json:"phone,omitempty"`
	Address         *Address         `json:"address,omitempty"`
	DateOfBirth     *Date            `json:"dateOfBirth,omitempty"`
	Contact         *BusinessContact `json:"contact,omitempty"`
	AuthorizedUsers []AuthorizedUser `json:"authorizedUsers,omitempty"`
	Tags            Tags             `json:"tags,omitempty"`
}

// Customer is an individual or business customer resource
type Customer = Resource[CustomerAttributes]

// PatchCustomerAttributes are the mutable attributes of a customer
type PatchCustomerAttributes struct {
	Address         *Address         `json:"address,omitempty"`
	Phone           *Phone           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	DBA             string           `json:"dba,omitempty"`
	AuthorizedUsers []AuthorizedUser `json:"authorizedUsers,omitempty"`
	Tags            Tags             `json:"tags,omitempty"`
}

// NewPatchCustomerRequest builds an update for an individualCustomer or businessCustomer
func NewPatchCustomerRequest(customerType string, attrs PatchCustomerAttributes) (*CreateRequest[PatchCustomerAttributes], error) {
	if customerType != "individualCustomer" && customerType != "businessCustomer" {
		return nil, pkgerrors.NewValidationError("type", "type must be individualCustomer or businessCustomer")
	}
	if attrs.Address != nil {
		if err := attrs.Address.Validate("attributes.address"); err != nil {
			return nil, err
		}
	}
	if attrs.Phone != nil {
		if err := attrs.Phone.Validate("attributes.phone"); err != nil {
			return nil, err
		}
	}
	return &CreateRequest[PatchCustomerAttributes]{Type: customerType, Attributes: attrs}, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
