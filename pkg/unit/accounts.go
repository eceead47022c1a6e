package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Accounts manages deposit accounts
type Accounts struct {
	resource
}

// Create opens a deposit account. Build req with models.NewCreateDepositAccountRequest.
func (a *Accounts) Create(ctx context.Context, req *models.CreateRequest[models.CreateDepositAccountAttributes]) (*models.Account, error) {
	return sendResource[models.AccountAttributes](ctx, a.resource, http.MethodPost, "", req)
}

// Get fetches an account
func (a *Accounts) Get(ctx context.Context, id string, include ...string) (*models.Account, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.AccountAttributes](ctx, a.resource, idPath(id), includeQuery(include))
}

// List returns a page of accounts
func (a *Accounts) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Account], error) {
	return listResources[models.AccountAttributes](ctx, a.resource, "", params.Values())
}

// Update replaces the tags of an account
func (a *Accounts) Update(ctx context.Context, id string, tags models.Tags) (*models.Account, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	req := &models.CreateRequest[models.TagsAttributes]{Type: "depositAccount", Attributes: models.TagsAttributes{Tags: tags}}
	return sendResource[models.AccountAttributes](ctx, a.resource, http.MethodPatch, idPath(id), req)
}

// Close closes an account for the given reason
func (a *Accounts) Close(ctx context.Context, id string, reason models.AccountCloseReason) (*models.Account, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	req, err := models.NewCloseAccountRequest(reason)
	if err != nil {
		return nil, err
	}
	return sendResource[models.AccountAttributes](ctx, a.resource, http.MethodPost, idPath(id, "close"), req)
}
