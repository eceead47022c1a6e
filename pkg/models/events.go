package models

import (
	"time"

	"github.com/kevin07696/unit-client/pkg/encoding"
)

// EventAttributes holds the members every event carries. Raw keeps the full attribute
// object for the type-specific members.
type EventAttributes struct {
	CreatedAt time.Time `json:"createdAt"`
	Tags      Tags      `json:"tags,omitempty"`

	Raw encoding.RawMessage `json:"-"`
}

func (a *EventAttributes) UnmarshalJSON(data []byte) error {
	type plain EventAttributes
	var p plain
	if err := unmarshalJSON(data, &p); err != nil {
		return err
	}
	*a = EventAttributes(p)
	a.Raw = append(encoding.RawMessage(nil), data...)
	return nil
}

// Event is a notification about a change to another resource; Type holds the event name
// (e.g. payment.clearing, account.closed)
type Event = Resource[EventAttributes]
