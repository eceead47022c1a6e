package models

import (
	"time"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// ApplicationStatus is the review state of an application
type ApplicationStatus string

const (
	ApplicationStatusAwaitingDocuments ApplicationStatus = "AwaitingDocuments"
	ApplicationStatusPendingReview     ApplicationStatus = "PendingReview"
	ApplicationStatusPending           ApplicationStatus = "Pending"
	ApplicationStatusApproved          ApplicationStatus = "Approved"
	ApplicationStatusDenied            ApplicationStatus = "Denied"
)

// ApplicationAttributes covers both individual and business applications.
// Members that only apply to one kind are left empty for the other.
type ApplicationAttributes struct {
	CreatedAt   time.Time         `json:"createdAt"`
	Status      ApplicationStatus `json:"status"`
	Message     string            `json:"message,omitempty"`
	FullName    *FullName         `json:"fullName,omitempty"`
	Name        string            `json:"name,omitempty"`
	Email       string            `json:"email,omitempty"`
	Phone       *Phone            `json:"phone,omitempty"`
	Address     *Address          `json:"address,omitempty"`
	DateOfBirth *Date             `json:"dateOfBirth,omitempty"`
	EntityType  string            `json:"entityType,omitempty"`
	Tags        Tags              `json:"tags,omitempty"`
}

// Application is an individual or business application resource
type Application = Resource[ApplicationAttributes]

// CreateIndividualApplicationAttributes are the attributes of an individual application
type CreateIndividualApplicationAttributes struct {
	SSN         string   `json:"ssn"`
	FullName    FullName `json:"fullName"`
	DateOfBirth Date     `json:"dateOfBirth"`
	Address     Address  `json:"address"`
	Email       string   `json:"email"`
	Phone       Phone    `json:"phone"`
	IP          string   `json:"ip,omitempty"`
	Tags        Tags     `json:"tags,omitempty"`
}

// NewCreateIndividualApplicationRequest validates and wraps an individual application
func NewCreateIndividualApplicationRequest(attrs CreateIndividualApplicationAttributes) (*CreateRequest[CreateIndividualApplicationAttributes], error) {
	if len(attrs.SSN) != 9 || !isDigits(attrs.SSN) {
		return nil, pkgerrors.NewValidationError("attributes.ssn", "ssn must be 9 digits")
	}
	if attrs.FullName.First == "" || attrs.FullName.Last == "" {
		return nil, pkgerrors.NewValidationError("attributes.fullName", "first and last name are required")
	}
	if attrs.DateOfBirth.IsZero() {
		return nil, pkgerrors.NewValidationError("attributes.dateOfBirth", "date of birth is required")
	}
	if err := attrs.Address.Validate("attributes.address"); err != nil {
		return nil, err
	}
	if attrs.Email == "" {
		return nil, pkgerrors.NewValidationError("attributes.email", "email is required")
	}
	if err := attrs.Phone.Validate("attributes.phone"); err != nil {
		return nil, err
	}
	return &CreateRequest[CreateIndividualApplicationAttributes]{Type: "individualApplication", Attributes: attrs}, nil
}

// CreateBusinessApplicationAttributes are the attributes of a business application
type CreateBusinessApplicationAttributes struct {
	Name                 string            `json:"name"`
	DBA                  string            `json:"dba,omitempty"`
	Address              Address           `json:"address"`
	Phone                Phone             `json:"phone"`
	StateOfIncorporation string            `json:"stateOfIncorporation"`
	EIN                  string            `json:"ein"`
	EntityType           string            `json:"entityType"`
	Contact              BusinessContact   `json:"contact"`
	Officer              Officer           `json:"officer"`
	BeneficialOwners     []BeneficialOwner `json:"beneficialOwners"`
	Tags                 Tags              `json:"tags,omitempty"`
}

// NewCreateBusinessApplicationRequest validates and wraps a business application
func NewCreateBusinessApplicationRequest(attrs CreateBusinessApplicationAttributes) (*CreateRequest[CreateBusinessApplicationAttributes], error) {
	if attrs.Name == "" {
		return nil, pkgerrors.NewValidationError("attributes.name", "name is required")
	}
	if len(attrs.EIN) != 9 || !isDigits(attrs.EIN) {
		return nil, pkgerrors.NewValidationError("attributes.ein", "ein must be 9 digits")
	}
	if len(attrs.StateOfIncorporation) != 2 {
		return nil, pkgerrors.NewValidationError("attributes.stateOfIncorporation", "state of incorporation must be a two-letter code")
	}
	if err := attrs.Address.Validate("attributes.address"); err != nil {
		return nil, err
	}
	if err := attrs.Phone.Validate("attributes.phone"); err != nil {
		return nil, err
	}
	if err := attrs.Contact.Phone.Validate("attributes.contact.phone"); err != nil {
		return nil, err
	}
	if err := attrs.Officer.Address.Validate("attributes.officer.address"); err != nil {
		return nil, err
	}
	for i, owner := range attrs.BeneficialOwners {
		if err := owner.Validate("attributes.beneficialOwners[" + itoa(i) + "]"); err != nil {
			return nil, err
		}
	}
	return &CreateRequest[CreateBusinessApplicationAttributes]{Type: "businessApplication", Attributes: attrs}, nil
}
