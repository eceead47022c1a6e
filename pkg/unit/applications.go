package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Applications submits and reads customer onboarding applications
type Applications struct {
	resource
}

// CreateIndividual submits an individual application
func (a *Applications) CreateIndividual(ctx context.Context, attrs models.CreateIndividualApplicationAttributes) (*models.Application, error) {
	req, err := models.NewCreateIndividualApplicationRequest(attrs)
	if err != nil {
		return nil, err
	}
	return sendResource[models.ApplicationAttributes](ctx, a.resource, http.MethodPost, "", req)
}

// CreateBusiness submits a business application
func (a *Applications) CreateBusiness(ctx context.Context, attrs models.CreateBusinessApplicationAttributes) (*models.Application, error) {
	req, err := models.NewCreateBusinessApplicationRequest(attrs)
	if err != nil {
		return nil, err
	}
	return sendResource[models.ApplicationAttributes](ctx, a.resource, http.MethodPost, "", req)
}

// Get fetches an application
func (a *Applications) Get(ctx context.Context, id string) (*models.Application, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.ApplicationAttributes](ctx, a.resource, idPath(id), nil)
}

// List returns a page of applications
func (a *Applications) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Application], error) {
	return listResources[models.ApplicationAttributes](ctx, a.resource, "", params.Values())
}
