package unit

import (
	"context"
	"net/http"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/pkg/observability"
	"github.com/kevin07696/unit-client/pkg/ports"
)

var errNoPayment = pkgerrors.NewRequestError("EMPTY_RESPONSE", "response document carries no payment", pkgerrors.CategoryDecodeError, false, nil)

// Payments creates, reads and tags ACH and book payments
type Payments struct {
	resource
	metrics *observability.PaymentMetrics
}

// Create validates req and submits it. Requests that fail validation never reach the API.
// A book payment without an idempotency key is sent but logged as a warning, since
// retrying it may create a duplicate payment.
func (p *Payments) Create(ctx context.Context, req models.CreatePaymentRequest) (models.Payment, error) {
	if req == nil {
		p.metrics.RecordPaymentRejected("create")
		return nil, pkgerrors.NewValidationError("data", "payment request is required")
	}
	if err := req.Validate(); err != nil {
		p.metrics.RecordPaymentRejected("create")
		return nil, err
	}
	if book, ok := req.(*models.CreateBookPaymentRequest); ok && book.IdempotencyKey == "" {
		p.logger.Warn("creating book payment without idempotency key, a retry may duplicate it",
			ports.String("account_id", book.Account.Data.ID),
			ports.String("counterparty_account_id", book.CounterpartyAccount.Data.ID),
		)
	}

	var resp models.PaymentResponse
	if err := p.call(ctx, http.MethodPost, "", nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errNoPayment
	}

	base := resp.Data.Base()
	p.metrics.RecordPaymentCreated(string(resp.Data.PaymentType()), string(base.Status), string(base.Direction), base.Amount.Int64())
	p.logger.Info("payment created",
		ports.String("payment_id", resp.Data.PaymentID()),
		ports.String("payment_type", string(resp.Data.PaymentType())),
		ports.String("status", string(base.Status)),
	)
	return resp.Data, nil
}

// Get fetches a payment. include names related resources to side-load into the document.
func (p *Payments) Get(ctx context.Context, id string, include ...string) (*models.PaymentResponse, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	var resp models.PaymentResponse
	if err := p.call(ctx, http.MethodGet, idPath(id), includeQuery(include), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errNoPayment
	}
	return &resp, nil
}

// List returns a page of payments matching params
func (p *Payments) List(ctx context.Context, params models.ListParams) (*models.PaymentListResponse, error) {
	var resp models.PaymentListResponse
	if err := p.call(ctx, http.MethodGet, "", params.Values(), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update replaces the tags of a payment. Any other attribute fails validation locally.
func (p *Payments) Update(ctx context.Context, id string, req *models.PatchPaymentRequest) (models.Payment, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	if req == nil {
		p.metrics.RecordPaymentRejected("update")
		return nil, pkgerrors.NewValidationError("data", "patch request is required")
	}
	if err := req.Validate(); err != nil {
		p.metrics.RecordPaymentRejected("update")
		return nil, err
	}

	var resp models.PaymentResponse
	if err := p.call(ctx, http.MethodPatch, idPath(id), nil, req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, errNoPayment
	}
	return resp.Data, nil
}
