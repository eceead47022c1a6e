package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Counterparties stores external bank accounts for linked ACH payments
type Counterparties struct {
	resource
}

// Create stores a counterparty. Build req with models.NewCreateCounterpartyRequest.
func (c *Counterparties) Create(ctx context.Context, req *models.CreateRequest[models.CreateCounterpartyAttributes]) (*models.CounterpartyResource, error) {
	return sendResource[models.CounterpartyAttributes](ctx, c.resource, http.MethodPost, "", req)
}

// Get fetches a counterparty
func (c *Counterparties) Get(ctx context.Context, id string) (*models.CounterpartyResource, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.CounterpartyAttributes](ctx, c.resource, idPath(id), nil)
}

// List returns a page of counterparties
func (c *Counterparties) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.CounterpartyResource], error) {
	return listResources[models.CounterpartyAttributes](ctx, c.resource, "", params.Values())
}

// Delete removes a counterparty
func (c *Counterparties) Delete(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return c.call(ctx, http.MethodDelete, idPath(id), nil, nil, nil)
}
