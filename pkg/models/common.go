package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/shopspring/decimal"
)

// RelationshipData identifies a related resource by type and id
type RelationshipData struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Relationship is a typed reference to another resource, without its body
type Relationship struct {
	Data RelationshipData `json:"data"`
}

// NewRelationship creates a reference to the resource of the given type and id
func NewRelationship(resourceType, id string) Relationship {
	return Relationship{Data: RelationshipData{Type: resourceType, ID: id}}
}

// IsZero reports whether the relationship is unset
func (r Relationship) IsZero() bool {
	return r.Data.Type == "" && r.Data.ID == ""
}

// Validate checks that both halves of the reference are present
func (r Relationship) Validate(field string) error {
	if r.Data.ID == "" {
		return pkgerrors.NewValidationError(field, "relationship id is required")
	}
	if r.Data.Type == "" {
		return pkgerrors.NewValidationError(field, "relationship type is required")
	}
	return nil
}

// Tags is an open key-value map attached to resources. Key order is not preserved.
type Tags map[string]string

// Direction is the direction in which the funds of an ACH payment flow
type Direction string

const (
	DirectionDebit  Direction = "Debit"
	DirectionCredit Direction = "Credit"
)

// Validate rejects anything outside the closed set of directions
func (d Direction) Validate(field string) error {
	switch d {
	case DirectionDebit, DirectionCredit:
		return nil
	case "":
		return pkgerrors.NewValidationError(field, "direction is required")
	default:
		return pkgerrors.NewValidationError(field, fmt.Sprintf("unknown direction %q, expected Debit or Credit", string(d)))
	}
}

// Cents is an amount in cents carried as a decimal string, as the API returns it on resources
type Cents string

// UnmarshalJSON accepts only a JSON string holding a whole number of cents
func (c *Cents) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalJSON(data, &s); err != nil {
		return pkgerrors.NewValidationError("amount", "amount must be a decimal string of cents")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return pkgerrors.NewValidationError("amount", fmt.Sprintf("invalid amount %q", s))
	}
	*c = Cents(s)
	return nil
}

// Decimal returns the amount in cents. An unset amount is zero.
func (c Cents) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(string(c))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Int64 returns the amount in cents as an integer
func (c Cents) Int64() int64 {
	return c.Decimal().IntPart()
}

// Dollars returns the amount in major units
func (c Cents) Dollars() decimal.Decimal {
	return c.Decimal().Shift(-2)
}

func (c Cents) String() string {
	return string(c)
}

const dateLayout = "2006-01-02"

// Date is a calendar date. It decodes both full dates and RFC3339 timestamps and
// always encodes as a full date.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month and day
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalJSON(data, &s); err != nil {
		return err
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

// AccountType is the type of an external bank account
type AccountType string

const (
	AccountTypeChecking AccountType = "Checking"
	AccountTypeSavings  AccountType = "Savings"
)

// Counterparty describes the party on the other side of an ACH payment
type Counterparty struct {
	RoutingNumber string      `json:"routingNumber"`
	AccountNumber string      `json:"accountNumber"`
	AccountType   AccountType `json:"accountType"`
	Name          string      `json:"name"`
}

// Validate checks routing number, account number, account type and name
func (c Counterparty) Validate(field string) error {
	if len(c.RoutingNumber) != 9 || !isDigits(c.RoutingNumber) {
		return pkgerrors.NewValidationError(field+".routingNumber", "routing number must be 9 digits")
	}
	if c.AccountNumber == "" || !isDigits(c.AccountNumber) {
		return pkgerrors.NewValidationError(field+".accountNumber", "account number must be digits")
	}
	if c.AccountType != AccountTypeChecking && c.AccountType != AccountTypeSavings {
		return pkgerrors.NewValidationError(field+".accountType", "account type must be Checking or Savings")
	}
	if c.Name == "" {
		return pkgerrors.NewValidationError(field+".name", "name is required")
	}
	return nil
}

// Address is a postal address
type Address struct {
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Validate checks the required parts of the address
func (a Address) Validate(field string) error {
	if a.Street == "" {
		return pkgerrors.NewValidationError(field+".street", "street is required")
	}
	if a.City == "" {
		return pkgerrors.NewValidationError(field+".city", "city is required")
	}
	if a.PostalCode == "" {
		return pkgerrors.NewValidationError(field+".postalCode", "postal code is required")
	}
	if len(a.Country) != 2 {
		return pkgerrors.NewValidationError(field+".country", "country must be a two-letter code")
	}
	if a.Country == "US" && len(a.State) != 2 {
		return pkgerrors.NewValidationError(field+".state", "state must be a two-letter code")
	}
	return nil
}

// FullName is the name of a person
type FullName struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// Phone is a phone number with its country calling code
type Phone struct {
	CountryCode string `json:"countryCode"`
	Number      string `json:"number"`
}

// Validate checks that both parts are numeric
func (p Phone) Validate(field string) error {
	if p.CountryCode == "" || !isDigits(p.CountryCode) {
		return pkgerrors.NewValidationError(field+".countryCode", "country code must be digits")
	}
	if p.Number == "" || !isDigits(p.Number) {
		return pkgerrors.NewValidationError(field+".number", "number must be digits")
	}
	return nil
}

// Coordinates is a geographic position
type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Validate checks the coordinate ranges
func (c Coordinates) Validate(field string) error {
	if c.Longitude < -180 || c.Longitude > 180 {
		return pkgerrors.NewValidationError(field+".longitude", "longitude must be between -180 and 180")
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return pkgerrors.NewValidationError(field+".latitude", "latitude must be between -90 and 90")
	}
	return nil
}

// AuthorizedUser is a person allowed to act on a business customer's behalf
type AuthorizedUser struct {
	FullName FullName `json:"fullName"`
	Email    string   `json:"email"`
	Phone    Phone    `json:"phone"`
}

// BusinessContact is the primary contact of a business
type BusinessContact struct {
	FullName FullName `json:"fullName"`
	Email    string   `json:"email"`
	Phone    Phone    `json:"phone"`
}

// Officer is the senior officer of a business
type Officer struct {
	Status      string   `json:"status,omitempty"`
	FullName    FullName `json:"fullName"`
	Title       string   `json:"title,omitempty"`
	SSN         string   `json:"ssn,omitempty"`
	Passport    string   `json:"passport,omitempty"`
	Nationality string   `json:"nationality,omitempty"`
	DateOfBirth Date     `json:"dateOfBirth"`
	Address     Address  `json:"address"`
	Phone       Phone    `json:"phone"`
	Email       string   `json:"email"`
}

// BeneficialOwner is a person owning a share of a business
type BeneficialOwner struct {
	Status      string   `json:"status,omitempty"`
	FullName    FullName `json:"fullName"`
	SSN         string   `json:"ssn,omitempty"`
	Passport    string   `json:"passport,omitempty"`
	Nationality string   `json:"nationality,omitempty"`
	DateOfBirth Date     `json:"dateOfBirth"`
	Address     Address  `json:"address"`
	Phone       Phone    `json:"phone"`
	Email       string   `json:"email"`
	Percentage  int      `json:"percentage,omitempty"`
}

// Validate checks identification and ownership percentage
func (b BeneficialOwner) Validate(field string) error {
	if b.SSN == "" && b.Passport == "" {
		return pkgerrors.NewValidationError(field+".ssn", "either ssn or passport is required")
	}
	if b.Passport != "" && b.Nationality == "" {
		return pkgerrors.NewValidationError(field+".nationality", "nationality is required with a passport")
	}
	if b.Percentage < 0 || b.Percentage > 100 {
		return pkgerrors.NewValidationError(field+".percentage", "percentage must be between 0 and 100")
	}
	return nil
}

// NewIdempotencyKey returns a random key suitable for the idempotencyKey attribute
func NewIdempotencyKey() string {
	return uuid.NewString()
}

// isDigits reports whether s holds only ASCII digits, so len(s) is also its digit count
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
