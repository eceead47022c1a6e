package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Customers reads and updates individual and business customers
type Customers struct {
	resource
}

// Get fetches a customer
func (c *Customers) Get(ctx context.Context, id string) (*models.Customer, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.CustomerAttributes](ctx, c.resource, idPath(id), nil)
}

// List returns a page of customers
func (c *Customers) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Customer], error) {
	return listResources[models.CustomerAttributes](ctx, c.resource, "", params.Values())
}

// Update changes the mutable attributes of a customer. Build req with models.NewPatchCustomerRequest.
func (c *Customers) Update(ctx context.Context, id string, req *models.CreateRequest[models.PatchCustomerAttributes]) (*models.Customer, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return sendResource[models.CustomerAttributes](ctx, c.resource, http.MethodPatch, idPath(id), req)
}
