package models

import (
	"fmt"
	"time"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

// PaymentType is the discriminant of payment resources and payment requests
type PaymentType string

const (
	PaymentTypeACH  PaymentType = "achPayment"
	PaymentTypeBook PaymentType = "bookPayment"
)

// Validate rejects unknown payment types
func (t PaymentType) Validate(field string) error {
	switch t {
	case PaymentTypeACH, PaymentTypeBook:
		return nil
	case "":
		return pkgerrors.NewValidationError(field, "type is required")
	default:
		return pkgerrors.NewValidationError(field, fmt.Sprintf("unknown payment type %q", string(t)))
	}
}

// PaymentStatus is the remote lifecycle state of a payment. The client reads it, never drives it.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusRejected PaymentStatus = "Rejected"
	PaymentStatusClearing PaymentStatus = "Clearing"
	PaymentStatusSent     PaymentStatus = "Sent"
	PaymentStatusCanceled PaymentStatus = "Canceled"
	PaymentStatusReturned PaymentStatus = "Returned"
)

// Validate rejects anything outside the closed set of statuses
func (s PaymentStatus) Validate(field string) error {
	switch s {
	case PaymentStatusPending, PaymentStatusRejected, PaymentStatusClearing,
		PaymentStatusSent, PaymentStatusCanceled, PaymentStatusReturned:
		return nil
	default:
		return pkgerrors.NewValidationError(field, fmt.Sprintf("unknown payment status %q", string(s)))
	}
}

// Payment is either *ACHPayment or *BookPayment. Use a type switch, or VisitPayment, to branch.
type Payment interface {
	PaymentID() string
	PaymentType() PaymentType
	Base() BasePaymentAttributes
	isPayment()
}

// BasePaymentAttributes are shared by both payment variants
type BasePaymentAttributes struct {
	CreatedAt   time.Time     `json:"createdAt"`
	Status      PaymentStatus `json:"status"`
	Reason      string        `json:"reason,omitempty"`
	Direction   Direction     `json:"direction"`
	Description string        `json:"description"`
	Amount      Cents         `json:"amount"`
	Tags        Tags          `json:"tags,omitempty"`
}

var (
	basePaymentAttributeKeys = []string{"createdAt", "status", "reason", "direction", "description", "amount", "tags"}
	basePaymentRequiredKeys  = []string{"createdAt", "status", "direction", "description", "amount"}
	paymentEnvelopeKeys      = []string{"id", "type", "attributes", "relationships"}
)

func (a BasePaymentAttributes) validate() error {
	if err := a.Status.Validate("attributes.status"); err != nil {
		return err
	}
	return a.Direction.Validate("attributes.direction")
}

// ACHPaymentAttributes is the attribute set of an ACH payment
type ACHPaymentAttributes struct {
	BasePaymentAttributes
	Counterparty   Counterparty `json:"counterparty"`
	Addenda        string       `json:"addenda,omitempty"`
	SettlementDate *Date        `json:"settlementDate,omitempty"`
}

// ACHPaymentRelationships links an ACH payment to its account, customer and counterparty
type ACHPaymentRelationships struct {
	Account      Relationship `json:"account"`
	Customer     Relationship `json:"customer"`
	Counterparty Relationship `json:"counterparty"`
}

// ACHPayment is a payment originated through the ACH network
type ACHPayment struct {
	ID            string
	Attributes    ACHPaymentAttributes
	Relationships ACHPaymentRelationships
}

func (p *ACHPayment) PaymentID() string           { return p.ID }
func (p *ACHPayment) PaymentType() PaymentType    { return PaymentTypeACH }
func (p *ACHPayment) Base() BasePaymentAttributes { return p.Attributes.BasePaymentAttributes }
func (*ACHPayment) isPayment()                    {}

// BookPaymentRelationships links a book payment to both sides of the transfer
type BookPaymentRelationships struct {
	Account              Relationship `json:"account"`
	Customer             Relationship `json:"customer"`
	CounterpartyAccount  Relationship `json:"counterpartyAccount"`
	CounterpartyCustomer Relationship `json:"counterpartyCustomer"`
	Transaction          Relationship `json:"transaction"`
}

// BookPayment is a transfer between two accounts held by the same provider
type BookPayment struct {
	ID            string
	Attributes    BasePaymentAttributes
	Relationships BookPaymentRelationships
}

func (p *BookPayment) PaymentID() string           { return p.ID }
func (p *BookPayment) PaymentType() PaymentType    { return PaymentTypeBook }
func (p *BookPayment) Base() BasePaymentAttributes { return p.Attributes }
func (*BookPayment) isPayment()                    {}

type paymentWire struct {
	ID            string      `json:"id"`
	Type          PaymentType `json:"type"`
	Attributes    interface{} `json:"attributes"`
	Relationships interface{} `json:"relationships"`
}

func (p ACHPayment) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(paymentWire{ID: p.ID, Type: PaymentTypeACH, Attributes: p.Attributes, Relationships: p.Relationships})
}

func (p BookPayment) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(paymentWire{ID: p.ID, Type: PaymentTypeBook, Attributes: p.Attributes, Relationships: p.Relationships})
}

func (p *ACHPayment) UnmarshalJSON(data []byte) error {
	payment, err := UnmarshalPayment(data)
	if err != nil {
		return err
	}
	ach, ok := payment.(*ACHPayment)
	if !ok {
		return pkgerrors.NewValidationError("type", "expected achPayment, got "+string(payment.PaymentType()))
	}
	*p = *ach
	return nil
}

func (p *BookPayment) UnmarshalJSON(data []byte) error {
	payment, err := UnmarshalPayment(data)
	if err != nil {
		return err
	}
	book, ok := payment.(*BookPayment)
	if !ok {
		return pkgerrors.NewValidationError("type", "expected bookPayment, got "+string(payment.PaymentType()))
	}
	*p = *book
	return nil
}

// UnmarshalPayment decodes a payment resource, selecting the variant by its type.
// Unknown types, missing required members and members belonging to the other variant
// are all rejected; no partially populated payment is ever returned.
func UnmarshalPayment(data []byte) (Payment, error) {
	members, err := objectFields(data, "", paymentEnvelopeKeys, paymentEnvelopeKeys)
	if err != nil {
		return nil, err
	}

	var id string
	var paymentType PaymentType
	if err := decodeInto(members["id"], "id", &id); err != nil {
		return nil, err
	}
	if err := decodeInto(members["type"], "type", &paymentType); err != nil {
		return nil, err
	}
	if err := paymentType.Validate("type"); err != nil {
		return nil, err
	}

	if paymentType == PaymentTypeACH {
		payment, err := decodeACHPayment(id, members)
		if err != nil {
			return nil, err
		}
		return payment, nil
	}
	payment, err := decodeBookPayment(id, members)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

var (
	achPaymentAttributeKeys  = append(append([]string{}, basePaymentAttributeKeys...), "counterparty", "addenda", "settlementDate")
	achPaymentRequiredKeys   = append(append([]string{}, basePaymentRequiredKeys...), "counterparty")
	achPaymentRelationships  = []string{"account", "customer", "counterparty"}
	bookPaymentRelationships = []string{"account", "customer", "counterpartyAccount", "counterpartyCustomer", "transaction"}
	counterpartyKeys         = []string{"routingNumber", "accountNumber", "accountType", "name"}
)

func decodeACHPayment(id string, members map[string]encoding.RawMessage) (*ACHPayment, error) {
	attrs, err := objectFields(members["attributes"], "attributes", achPaymentAttributeKeys, achPaymentRequiredKeys)
	if err != nil {
		return nil, err
	}
	if _, err := objectFields(attrs["counterparty"], "attributes.counterparty", counterpartyKeys, counterpartyKeys); err != nil {
		return nil, err
	}
	if _, err := objectFields(members["relationships"], "relationships", achPaymentRelationships, achPaymentRelationships); err != nil {
		return nil, err
	}

	payment := &ACHPayment{ID: id}
	if err := decodeInto(members["attributes"], "attributes", &payment.Attributes); err != nil {
		return nil, err
	}
	if err := decodeInto(members["relationships"], "relationships", &payment.Relationships); err != nil {
		return nil, err
	}
	if err := payment.Attributes.validate(); err != nil {
		return nil, err
	}
	if err := payment.Attributes.Counterparty.Validate("attributes.counterparty"); err != nil {
		return nil, err
	}

	rels := payment.Relationships
	if err := validateRelationships(
		namedRelationship{"account", rels.Account},
		namedRelationship{"customer", rels.Customer},
		namedRelationship{"counterparty", rels.Counterparty},
	); err != nil {
		return nil, err
	}
	return payment, nil
}

func decodeBookPayment(id string, members map[string]encoding.RawMessage) (*BookPayment, error) {
	if _, err := objectFields(members["attributes"], "attributes", basePaymentAttributeKeys, basePaymentRequiredKeys); err != nil {
		return nil, err
	}
	if _, err := objectFields(members["relationships"], "relationships", bookPaymentRelationships, bookPaymentRelationships); err != nil {
		return nil, err
	}

	payment := &BookPayment{ID: id}
	if err := decodeInto(members["attributes"], "attributes", &payment.Attributes); err != nil {
		return nil, err
	}
	if err := decodeInto(members["relationships"], "relationships", &payment.Relationships); err != nil {
		return nil, err
	}
	if err := payment.Attributes.validate(); err != nil {
		return nil, err
	}

	rels := payment.Relationships
	if err := validateRelationships(
		namedRelationship{"account", rels.Account},
		namedRelationship{"customer", rels.Customer},
		namedRelationship{"counterpartyAccount", rels.CounterpartyAccount},
		namedRelationship{"counterpartyCustomer", rels.CounterpartyCustomer},
		namedRelationship{"transaction", rels.Transaction},
	); err != nil {
		return nil, err
	}
	return payment, nil
}

type namedRelationship struct {
	name string
	rel  Relationship
}

func validateRelationships(rels ...namedRelationship) error {
	for _, r := range rels {
		if err := r.rel.Validate("relationships." + r.name); err != nil {
			return err
		}
	}
	return nil
}

// VisitPayment calls the handler matching the payment's variant
func VisitPayment(p Payment, onACH func(*ACHPayment) error, onBook func(*BookPayment) error) error {
	switch payment := p.(type) {
	case *ACHPayment:
		return onACH(payment)
	case *BookPayment:
		return onBook(payment)
	default:
		return fmt.Errorf("unhandled payment variant %T", p)
	}
}

// PaymentResponse is the document returned for a single payment
type PaymentResponse struct {
	Data     Payment
	Included []encoding.RawMessage
}

func (r *PaymentResponse) UnmarshalJSON(data []byte) error {
	var doc struct {
		Data     encoding.RawMessage   `json:"data"`
		Included []encoding.RawMessage `json:"included"`
	}
	if err := decodeInto(data, "", &doc); err != nil {
		return err
	}
	payment, err := UnmarshalPayment(doc.Data)
	if err != nil {
		return err
	}
	r.Data = payment
	r.Included = doc.Included
	return nil
}

func (r PaymentResponse) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(struct {
		Data     Payment               `json:"data"`
		Included []encoding.RawMessage `json:"included,omitempty"`
	}{Data: r.Data, Included: r.Included})
}

// PaymentListResponse is the document returned when listing payments
type PaymentListResponse struct {
	Data []Payment
	Meta *Meta
}

func (r *PaymentListResponse) UnmarshalJSON(data []byte) error {
	var doc struct {
		Data []encoding.RawMessage `json:"data"`
		Meta *Meta                 `json:"meta"`
	}
	if err := decodeInto(data, "", &doc); err != nil {
		return err
	}
	payments := make([]Payment, 0, len(doc.Data))
	for i, raw := range doc.Data {
		payment, err := UnmarshalPayment(raw)
		if err != nil {
			return fmt.Errorf("data[%d]: %w", i, err)
		}
		payments = append(payments, payment)
	}
	r.Data = payments
	r.Meta = doc.Meta
	return nil
}

func (r PaymentListResponse) MarshalJSON() ([]byte, error) {
	return encoding.Marshal(struct {
		Data []Payment `json:"data"`
		Meta *Meta     `json:"meta,omitempty"`
	}{Data: r.Data, Meta: r.Meta})
}
