package unit

import (
	"context"
	"net/http"
	"net/url"

	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
	"github.com/kevin07696/unit-client/pkg/models"
	"github.com/kevin07696/unit-client/pkg/ports"
	"github.com/kevin07696/unit-client/pkg/transport"
)

// IsError reports whether err is an errors document returned by the API, as opposed
// to a local validation failure or a transport failure
func IsError(err error) bool {
	return pkgerrors.IsError(err)
}

// resource is the state shared by every resource client. It is never mutated after construction.
type resource struct {
	backend  transport.Backend
	token    string
	basePath string
	logger   ports.Logger
}

func (r resource) at(basePath string) resource {
	r.basePath = basePath
	return r
}

// call sends body wrapped in the data envelope and decodes the response into v
func (r resource) call(ctx context.Context, method, path string, query url.Values, body, v interface{}) error {
	var payload interface{}
	if body != nil {
		payload = models.DataEnvelope{Data: body}
	}
	return r.backend.Call(ctx, &transport.Request{
		Method: method,
		Path:   r.basePath + path,
		Query:  query,
		Body:   payload,
		Token:  r.token,
	}, v)
}

func requireID(field, id string) error {
	switch id {
	case "":
		return pkgerrors.NewValidationError(field, "id is required")
	case ".", "..":
		return pkgerrors.NewValidationError(field, "id is not a valid path segment")
	}
	return nil
}

// idPath builds "/{id}/{segments...}" with id escaped as a single path segment
func idPath(id string, segments ...string) string {
	path := "/" + url.PathEscape(id)
	for _, segment := range segments {
		path += "/" + segment
	}
	return path
}

func getResource[A any](ctx context.Context, r resource, path string, query url.Values) (*models.Resource[A], error) {
	var resp models.Response[models.Resource[A]]
	if err := r.call(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func listResources[A any](ctx context.Context, r resource, path string, query url.Values) (*models.ListResponse[models.Resource[A]], error) {
	var resp models.ListResponse[models.Resource[A]]
	if err := r.call(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func sendResource[A any](ctx context.Context, r resource, method, path string, body interface{}) (*models.Resource[A], error) {
	var resp models.Response[models.Resource[A]]
	if err := r.call(ctx, method, path, nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func includeQuery(include []string) url.Values {
	return models.ListParams{Include: include}.Values()
}
