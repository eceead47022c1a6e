package unit

import (
	"context"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Authorizations reads card authorizations
type Authorizations struct {
	resource
}

// Get fetches an authorization
func (a *Authorizations) Get(ctx context.Context, id string) (*models.Authorization, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.AuthorizationAttributes](ctx, a.resource, idPath(id), nil)
}

// List returns a page of authorizations
func (a *Authorizations) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Authorization], error) {
	return listResources[models.AuthorizationAttributes](ctx, a.resource, "", params.Values())
}
