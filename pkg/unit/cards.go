package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Cards issues and manages debit cards
type Cards struct {
	resource
}

// Create issues a card. Build req with models.NewCreateCardRequest.
func (c *Cards) Create(ctx context.Context, req *models.CreateRequest[models.CreateCardAttributes]) (*models.Card, error) {
	return sendResource[models.CardAttributes](ctx, c.resource, http.MethodPost, "", req)
}

// Get fetches a card
func (c *Cards) Get(ctx context.Context, id string) (*models.Card, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.CardAttributes](ctx, c.resource, idPath(id), nil)
}

// List returns a page of cards
func (c *Cards) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Card], error) {
	return listResources[models.CardAttributes](ctx, c.resource, "", params.Values())
}

// Freeze temporarily blocks a card
func (c *Cards) Freeze(ctx context.Context, id string) (*models.Card, error) {
	return c.action(ctx, id, "freeze")
}

// Unfreeze lifts a freeze
func (c *Cards) Unfreeze(ctx context.Context, id string) (*models.Card, error) {
	return c.action(ctx, id, "unfreeze")
}

// Close permanently closes a card
func (c *Cards) Close(ctx context.Context, id string) (*models.Card, error) {
	return c.action(ctx, id, "close")
}

func (c *Cards) action(ctx context.Context, id, action string) (*models.Card, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return sendResource[models.CardAttributes](ctx, c.resource, http.MethodPost, idPath(id, action), nil)
}
