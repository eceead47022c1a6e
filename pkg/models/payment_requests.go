package models

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

const (
	maxACHDescriptionLength  = 10
	maxBookDescriptionLength = 50
	maxAddendaLength         = 50
	maxIdempotencyKeyLength  = 255
)

// CreatePaymentRequest is one of *CreateBookPaymentRequest, *CreateInlinePaymentRequest,
// *CreateLinkedPaymentRequest or *CreateVerifiedPaymentRequest
type CreatePaymentRequest interface {
	PaymentType() PaymentType
	Validate() error
	isCreatePaymentRequest()
}

// CreateBookPaymentRequest moves funds between two accounts of the same provider.
// IdempotencyKey is optional here: a retry without one may create a duplicate payment.
type CreateBookPaymentRequest struct {
	Amount              int64
	Description         string
	IdempotencyKey      string
	Tags                Tags
	Account             Relationship
	CounterpartyAccount Relationship
}

// CreateInlinePaymentRequest originates an ACH payment to a counterparty supplied inline
type CreateInlinePaymentRequest struct {
	Amount         int64
	Direction      Direction
	Counterparty   Counterparty
	Description    string
	Addenda        string
	IdempotencyKey string
	Tags           Tags
	Account        Relationship
}

// CreateLinkedPaymentRequest originates an ACH payment to a previously created counterparty resource
type CreateLinkedPaymentRequest struct {
	Amount         int64
	Direction      Direction
	Description    string
	Addenda        string
	IdempotencyKey string
	Tags           Tags
	Account        Relationship
	Counterparty   Relationship
}

// CreateVerifiedPaymentRequest originates an ACH payment funded through a Plaid processor token.
// This shape has no idempotency key.
type CreateVerifiedPaymentRequest struct {
	Amount              int64
	Direction           Direction
	Description         string
	CounterpartyName    string
	PlaidProcessorToken string
	Account             Relationship
}

func (*CreateBookPaymentRequest) PaymentType() PaymentType     { return PaymentTypeBook }
func (*CreateInlinePaymentRequest) PaymentType() PaymentType   { return PaymentTypeACH }
func (*CreateLinkedPaymentRequest) PaymentType() PaymentType   { return PaymentTypeACH }
func (*CreateVerifiedPaymentRequest) PaymentType() PaymentType { return PaymentTypeACH }

func (*CreateBookPaymentRequest) isCreatePaymentRequest()     {}
func (*CreateInlinePaymentRequest) isCreatePaymentRequest()   {}
func (*CreateLinkedPaymentRequest) isCreatePaymentRequest()   {}
func (*CreateVerifiedPaymentRequest) isCreatePaymentRequest() {}

func (r *CreateBookPaymentRequest) Validate() error {
	if r == nil {
		return errNilRequest("book payment request")
	}
	if err := validateAmount(r.Amount); err != nil {
		return err
	}
	if err := validateDescription(r.Description, maxBookDescriptionLength); err != nil {
		return err
	}
	if err := validateIdempotencyKey(r.IdempotencyKey, false); err != nil {
		return err
	}
	if err := r.Account.Validate("relationships.account"); err != nil {
		return err
	}
	return r.CounterpartyAccount.Validate("relationships.counterpartyAccount")
}

func (r *CreateInlinePaymentRequest) Validate() error {
	if r == nil {
		return errNilRequest("inline payment request")
	}
	if err := validateACHCommon(r.Amount, r.Direction, r.Description); err != nil {
		return err
	}
	if err := validateAddenda(r.Addenda); err != nil {
		return err
	}
	if err := validateIdempotencyKey(r.IdempotencyKey, true); err != nil {
		return err
	}
	if err := r.Counterparty.Validate("attributes.counterparty"); err != nil {
		return err
	}
	return r.Account.Validate("relationships.account")
}

func (r *CreateLinkedPaymentRequest) Validate() error {
	if r == nil {
		return errNilRequest("linked payment request")
	}
	if err := validateACHCommon(r.Amount, r.Direction, r.Description); err != nil {
		return err
	}
	if err := validateAddenda(r.Addenda); err != nil {
		return err
	}
	if err := validateIdempotencyKey(r.IdempotencyKey, true); err != nil {
		return err
	}
	if err := r.Account.Validate("relationships.account"); err != nil {
		return err
	}
	return r.Counterparty.Validate("relationships.counterparty")
}

// Validate checks the verified shape. The account relationship is sent when set.
func (r *CreateVerifiedPaymentRequest) Validate() error {
	if r == nil {
		return errNilRequest("verified payment request")
	}
	if err := validateACHCommon(r.Amount, r.Direction, r.Description); err != nil {
		return err
	}
	if r.CounterpartyName == "" {
		return pkgerrors.NewValidationError("attributes.counterpartyName", "counterparty name is required")
	}
	if r.PlaidProcessorToken == "" {
		return pkgerrors.NewValidationError("attributes.plaidProcessorToken", "plaid processor token is required")
	}
	if !r.Account.IsZero() {
		return r.Account.Validate("relationships.account")
	}
	return nil
}

func errNilRequest(name string) error {
	return pkgerrors.NewValidationError("data", name+" is required")
}

func validateAmount(amount int64) error {
	if amount <= 0 {
		return pkgerrors.NewValidationError("attributes.amount", "amount must be a positive number of cents")
	}
	return nil
}

func validateDescription(description string, max int) error {
	if description == "" {
		return pkgerrors.NewValidationError("attributes.description", "description is required")
	}
	if utf8.RuneCountInString(description) > max {
		return pkgerrors.NewValidationError("attributes.description", fmt.Sprintf("description must be at most %d characters", max))
	}
	return nil
}

func validateAddenda(addenda string) error {
	if utf8.RuneCountInString(addenda) > maxAddendaLength {
		return pkgerrors.NewValidationError("attributes.addenda", fmt.Sprintf("addenda must be at most %d characters", maxAddendaLength))
	}
	return nil
}

func validateIdempotencyKey(key string, required bool) error {
	if key == "" && required {
		return pkgerrors.NewValidationError("attributes.idempotencyKey", "idempotency key is required for ACH payments")
	}
	if len(key) > maxIdempotencyKeyLength {
		return pkgerrors.NewValidationError("attributes.idempotencyKey", fmt.Sprintf("idempotency key must be at most %d characters", maxIdempotencyKeyLength))
	}
	return nil
}

func validateACHCommon(amount int64, direction Direction, description string) error {
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := direction.Validate("attributes.direction"); err != nil {
		return err
	}
	return validateDescription(description, maxACHDescriptionLength)
}

// createPaymentWire is the flat union of every attribute and relationship the four shapes use.
// Which members are present decides the shape.
type createPaymentWire struct {
	Type          PaymentType                `json:"type"`
	Attributes    createPaymentAttributes    `json:"attributes"`
	Relationships createPaymentRelationships `json:"relationships"`
}

type createPaymentAttributes struct {
	Amount              int64         `json:"amount"`
	Direction           Direction     `json:"direction,omitempty"`
	Counterparty        *Counterparty `json:"counterparty,omitempty"`
	Description         string        `json:"description"`
	Addenda             string        `json:"addenda,omitempty"`
	IdempotencyKey      string        `json:"idempotencyKey,omitempty"`
	Tags                Tags          `json:"tags,omitempty"`
	CounterpartyName    string        `json:"counterpartyName,omitempty"`
	PlaidProcessorToken string        `json:"plaidProcessorToken,omitempty"`
}

type createPaymentRelationships struct {
	Account             *Relationship `json:"account,omitempty"`
	CounterpartyAccount *Relationship `json:"counterpartyAccount,omitempty"`
	Counterparty        *Relationship `json:"counterparty,omitempty"`
}

func relationshipPtr(r Relationship) *Relationship {
	if r.IsZero() {
		return nil
	}
	return &r
}

func (r CreateBookPaymentRequest) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(createPaymentWire{
		Type: PaymentTypeBook,
		Attributes: createPaymentAttributes{
			Amount:         r.Amount,
			Description:    r.Description,
			IdempotencyKey: r.IdempotencyKey,
			Tags:           r.Tags,
		},
		Relationships: createPaymentRelationships{
			Account:             relationshipPtr(r.Account),
			CounterpartyAccount: relationshipPtr(r.CounterpartyAccount),
		},
	})
}

func (r CreateInlinePaymentRequest) MarshalJSON() ([]byte, error) {
	counterparty := r.Counterparty
	return encoding.Marshal(createPaymentWire{
		Type: PaymentTypeACH,
		Attributes: createPaymentAttributes{
			Amount:         r.Amount,
			Direction:      r.Direction,
			Counterparty:   &counterparty,
			Description:    r.Description,
			Addenda:        r.Addenda,
			IdempotencyKey: r.IdempotencyKey,
			Tags:           r.Tags,
		},
		Relationships: createPaymentRelationships{
			Account: relationshipPtr(r.Account),
		},
	})
}

func (r CreateLinkedPaymentRequest) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(createPaymentWire{
		Type: PaymentTypeACH,
		Attributes: createPaymentAttributes{
			Amount:         r.Amount,
			Direction:      r.Direction,
			Description:    r.Description,
			Addenda:        r.Addenda,
			IdempotencyKey: r.IdempotencyKey,
			Tags:           r.Tags,
		},
		Relationships: createPaymentRelationships{
			Account:      relationshipPtr(r.Account),
			Counterparty: relationshipPtr(r.Counterparty),
		},
	})
}

func (r CreateVerifiedPaymentRequest) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(createPaymentWire{
		Type: PaymentTypeACH,
		Attributes: createPaymentAttributes{
			Amount:              r.Amount,
			Direction:           r.Direction,
			Description:         r.Description,
			CounterpartyName:    r.CounterpartyName,
			PlaidProcessorToken: r.PlaidProcessorToken,
		},
		Relationships: createPaymentRelationships{
			Account: relationshipPtr(r.Account),
		},
	})
}

// PaymentFields are caller-supplied fields from which NewCreatePaymentRequest picks a request shape
type PaymentFields struct {
	Type                     PaymentType
	Amount                   int64
	Direction                Direction
	Description              string
	Addenda                  string
	IdempotencyKey           string
	Tags                     Tags
	Account                  *Relationship
	CounterpartyAccount      *Relationship
	Counterparty             *Counterparty
	CounterpartyRelationship *Relationship
	CounterpartyName         string
	PlaidProcessorToken      string
}

// NewCreatePaymentRequest selects exactly one request shape from the supplied fields and validates it.
//
//   - bookPayment: requires account and counterpartyAccount; direction is never allowed
//   - achPayment with an inline counterparty object: inline shape
//   - achPayment with a counterparty relationship: linked shape
//   - achPayment with a plaidProcessorToken: verified shape
//
// Supplying more than one of the three ACH counterparty sources is rejected.
func NewCreatePaymentRequest(f PaymentFields) (CreatePaymentRequest, error) {
	if err := f.Type.Validate("type"); err != nil {
		return nil, err
	}

	if f.Type == PaymentTypeBook {
		return newBookRequest(f)
	}

	sources := 0
	for _, present := range []bool{f.Counterparty != nil, f.CounterpartyRelationship != nil, f.PlaidProcessorToken != ""} {
		if present {
			sources++
		}
	}
	if sources > 1 {
		return nil, pkgerrors.NewValidationError("attributes.counterparty",
			"counterparty, counterparty relationship and plaidProcessorToken are mutually exclusive")
	}
	if sources == 0 {
		return nil, pkgerrors.NewValidationError("attributes.counterparty",
			"one of counterparty, counterparty relationship or plaidProcessorToken is required")
	}
	if f.CounterpartyAccount != nil {
		return nil, notAllowed("relationships.counterpartyAccount", PaymentTypeACH)
	}

	var req CreatePaymentRequest
	switch {
	case f.PlaidProcessorToken != "":
		if f.IdempotencyKey != "" {
			return nil, pkgerrors.NewValidationError("attributes.idempotencyKey", "idempotency key is not supported for verified ACH payments")
		}
		if f.Addenda != "" {
			return nil, pkgerrors.NewValidationError("attributes.addenda", "addenda is not supported for verified ACH payments")
		}
		if len(f.Tags) > 0 {
			return nil, pkgerrors.NewValidationError("attributes.tags", "tags are not supported for verified ACH payments")
		}
		req = &CreateVerifiedPaymentRequest{
			Amount:              f.Amount,
			Direction:           f.Direction,
			Description:         f.Description,
			CounterpartyName:    f.CounterpartyName,
			PlaidProcessorToken: f.PlaidProcessorToken,
			Account:             derefRelationship(f.Account),
		}
	case f.Counterparty != nil:
		if f.CounterpartyName != "" {
			return nil, pkgerrors.NewValidationError("attributes.counterpartyName", "counterpartyName is only used with plaidProcessorToken")
		}
		req = &CreateInlinePaymentRequest{
			Amount:         f.Amount,
			Direction:      f.Direction,
			Counterparty:   *f.Counterparty,
			Description:    f.Description,
			Addenda:        f.Addenda,
			IdempotencyKey: f.IdempotencyKey,
			Tags:           f.Tags,
			Account:        derefRelationship(f.Account),
		}
	default:
		if f.CounterpartyName != "" {
			return nil, pkgerrors.NewValidationError("attributes.counterpartyName", "counterpartyName is only used with plaidProcessorToken")
		}
		req = &CreateLinkedPaymentRequest{
			Amount:         f.Amount,
			Direction:      f.Direction,
			Description:    f.Description,
			Addenda:        f.Addenda,
			IdempotencyKey: f.IdempotencyKey,
			Tags:           f.Tags,
			Account:        derefRelationship(f.Account),
			Counterparty:   *f.CounterpartyRelationship,
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func newBookRequest(f PaymentFields) (CreatePaymentRequest, error) {
	switch {
	case f.Direction != "":
		return nil, notAllowed("attributes.direction", PaymentTypeBook)
	case f.Counterparty != nil:
		return nil, notAllowed("attributes.counterparty", PaymentTypeBook)
	case f.CounterpartyRelationship != nil:
		return nil, notAllowed("relationships.counterparty", PaymentTypeBook)
	case f.PlaidProcessorToken != "":
		return nil, notAllowed("attributes.plaidProcessorToken", PaymentTypeBook)
	case f.CounterpartyName != "":
		return nil, notAllowed("attributes.counterpartyName", PaymentTypeBook)
	case f.Addenda != "":
		return nil, notAllowed("attributes.addenda", PaymentTypeBook)
	}

	req := &CreateBookPaymentRequest{
		Amount:              f.Amount,
		Description:         f.Description,
		IdempotencyKey:      f.IdempotencyKey,
		Tags:                f.Tags,
		Account:             derefRelationship(f.Account),
		CounterpartyAccount: derefRelationship(f.CounterpartyAccount),
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func notAllowed(field string, paymentType PaymentType) error {
	return pkgerrors.NewValidationError(field, fmt.Sprintf("not allowed on %s requests", paymentType))
}

func derefRelationship(r *Relationship) Relationship {
	if r == nil {
		return Relationship{}
	}
	return *r
}

var (
	createRequestKeys           = []string{"type", "attributes", "relationships"}
	createBookAttributeKeys     = []string{"amount", "description", "idempotencyKey", "tags"}
	createBookRelationshipKeys  = []string{"account", "counterpartyAccount"}
	createACHAttributeKeys      = []string{"amount", "direction", "counterparty", "description", "addenda", "idempotencyKey", "tags", "counterpartyName", "plaidProcessorToken"}
	createACHRelationshipKeys   = []string{"account", "counterparty"}
	createRequiredAttributeKeys = []string{"amount", "description"}
)

// UnmarshalCreatePaymentRequest parses a wire create request and selects its shape.
// It applies the same rules as NewCreatePaymentRequest.
func UnmarshalCreatePaymentRequest(data []byte) (CreatePaymentRequest, error) {
	members, err := objectFields(data, "", createRequestKeys, []string{"type", "attributes"})
	if err != nil {
		return nil, err
	}

	var paymentType PaymentType
	if err := decodeInto(members["type"], "type", &paymentType); err != nil {
		return nil, err
	}
	if err := paymentType.Validate("type"); err != nil {
		return nil, err
	}

	attributeKeys, relationshipKeys := createACHAttributeKeys, createACHRelationshipKeys
	if paymentType == PaymentTypeBook {
		attributeKeys, relationshipKeys = createBookAttributeKeys, createBookRelationshipKeys
	}
	if _, err := objectFields(members["attributes"], "attributes", attributeKeys, createRequiredAttributeKeys); err != nil {
		return nil, err
	}
	if _, err := objectFields(members["relationships"], "relationships", relationshipKeys, nil); err != nil {
		return nil, err
	}

	var attrs createPaymentAttributes
	if err := decodeInto(members["attributes"], "attributes", &attrs); err != nil {
		return nil, err
	}
	var rels createPaymentRelationships
	if raw, ok := members["relationships"]; ok && !isNull(raw) {
		if err := decodeInto(raw, "relationships", &rels); err != nil {
			return nil, err
		}
	}

	return NewCreatePaymentRequest(PaymentFields{
		Type:                     paymentType,
		Amount:                   attrs.Amount,
		Direction:                attrs.Direction,
		Description:              attrs.Description,
		Addenda:                  attrs.Addenda,
		IdempotencyKey:           attrs.IdempotencyKey,
		Tags:                     attrs.Tags,
		Account:                  rels.Account,
		CounterpartyAccount:      rels.CounterpartyAccount,
		Counterparty:             attrs.Counterparty,
		CounterpartyRelationship: rels.Counterparty,
		CounterpartyName:         attrs.CounterpartyName,
		PlaidProcessorToken:      attrs.PlaidProcessorToken,
	})
}

// PatchPaymentRequest updates an existing payment. Tags are the only mutable attribute.
type PatchPaymentRequest struct {
	Type       PaymentType            `json:"type"`
	Attributes map[string]interface{} `json:"attributes"`
}

// NewPatchPaymentRequest builds a request replacing the tags of a payment
func NewPatchPaymentRequest(paymentType PaymentType, tags Tags) *PatchPaymentRequest {
	return &PatchPaymentRequest{
		Type:       paymentType,
		Attributes: map[string]interface{}{"tags": tags},
	}
}

// Validate rejects any attribute other than tags, and tag values that are not strings.
// A nil tag value is allowed and removes the tag.
func (r *PatchPaymentRequest) Validate() error {
	if r == nil {
		return errNilRequest("patch request")
	}
	if err := r.Type.Validate("type"); err != nil {
		return err
	}
	if len(r.Attributes) == 0 {
		return pkgerrors.NewValidationError("attributes.tags", "tags are required")
	}

	keys := make([]string, 0, len(r.Attributes))
	for key := range r.Attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if key != "tags" {
			return pkgerrors.NewValidationError("attributes."+key, "only tags can be updated on a payment")
		}
	}

	switch tags := r.Attributes["tags"].(type) {
	case Tags, map[string]string:
		return nil
	case map[string]interface{}:
		for key, value := range tags {
			if _, ok := value.(string); !ok && value != nil {
				return pkgerrors.NewValidationError("attributes.tags."+key, "tag values must be strings")
			}
		}
		return nil
	default:
		return pkgerrors.NewValidationError("attributes.tags", "tags must be a map of strings")
	}
}
