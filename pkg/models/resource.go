package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kevin07696/unit-client/pkg/encoding"
)

// Resource is the `{id, type, attributes, relationships}` shape shared by every resource family
type Resource[A any] struct {
	ID            string                  `json:"id"`
	Type          string                  `json:"type"`
	Attributes    A                       `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Relationship returns the named relationship and whether it is present
func (r Resource[A]) Relationship(name string) (Relationship, bool) {
	rel, ok := r.Relationships[name]
	return rel, ok
}

// CreateRequest is the `{type, attributes, relationships}` shape of create and update bodies
type CreateRequest[A any] struct {
	Type          string                  `json:"type"`
	Attributes    A                       `json:"attributes"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// Meta carries list pagination information
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page returned by a list call
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Response is the document returned for a single resource
type Response[T any] struct {
	Data     T                     `json:"data"`
	Included []encoding.RawMessage `json:"included,omitempty"`
}

// ListResponse is the document returned when listing resources
type ListResponse[T any] struct {
	Data     []T                   `json:"data"`
	Included []encoding.RawMessage `json:"included,omitempty"`
	Meta     *Meta                 `json:"meta,omitempty"`
}

// DataEnvelope wraps a request body in the top-level data member the API expects
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// ListParams are the pagination, filtering and sorting options shared by list calls
type ListParams struct {
	Limit      int
	Offset     int
	AccountID  string
	CustomerID string
	Tags       Tags
	Since      time.Time
	Until      time.Time
	Types      []string
	Sort       string
	Include    []string
}

// Values renders the params as query string values
func (p ListParams) Values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("page[limit]", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("page[offset]", strconv.Itoa(p.Offset))
	}
	if p.AccountID != "" {
		v.Set("filter[accountId]", p.AccountID)
	}
	if p.CustomerID != "" {
		v.Set("filter[customerId]", p.CustomerID)
	}
	if len(p.Tags) > 0 {
		if tags, err := encoding.Marshal(p.Tags); err == nil {
			v.Set("filter[tags]", string(tags))
		}
	}
	if !p.Since.IsZero() {
		v.Set("filter[since]", p.Since.UTC().Format(time.RFC3339Nano))
	}
	if !p.Until.IsZero() {
		v.Set("filter[until]", p.Until.UTC().Format(time.RFC3339Nano))
	}
	for i, t := range p.Types {
		v.Set("filter[type]["+strconv.Itoa(i)+"]", t)
	}
	if p.Sort != "" {
		v.Set("sort", p.Sort)
	}
	if len(p.Include) > 0 {
		v.Set("include", strings.Join(p.Include, ","))
	}
	return v
}
