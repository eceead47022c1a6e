package unit

import (
	"context"
	"net/http"

	"github.com/kevin07696/unit-client/pkg/models"
)

// Events reads the event stream and re-fires events to webhooks
type Events struct {
	resource
}

// Get fetches an event
func (e *Events) Get(ctx context.Context, id string) (*models.Event, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return getResource[models.EventAttributes](ctx, e.resource, idPath(id), nil)
}

// List returns a page of events
func (e *Events) List(ctx context.Context, params models.ListParams) (*models.ListResponse[models.Event], error) {
	return listResources[models.EventAttributes](ctx, e.resource, "", params.Values())
}

// Fire redelivers an event to all enabled webhooks
func (e *Events) Fire(ctx context.Context, id string) error {
	if err := requireID("id", id); err != nil {
		return err
	}
	return e.call(ctx, http.MethodPost, idPath(id), nil, nil, nil)
}
