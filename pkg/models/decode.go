package models

import (
	"bytes"
	"sort"

	"github.com/kevin07696/unit-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/unit-client/pkg/errors"
)

func unmarshalJSON(data []byte, v interface{}) error {
	return encoding.Unmarshal(data, v)
}

func isNull(raw encoding.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// objectFields decodes a JSON object into its raw members. Every member must be in allowed
// and every name in required must be present and non-null.
func objectFields(data []byte, field string, allowed, required []string) (map[string]encoding.RawMessage, error) {
	var members map[string]encoding.RawMessage
	if isNull(data) {
		if len(required) > 0 {
			return nil, pkgerrors.NewValidationError(field, "is required")
		}
		return map[string]encoding.RawMessage{}, nil
	}
	if err := unmarshalJSON(data, &members); err != nil {
		return nil, pkgerrors.NewValidationError(field, "must be a JSON object")
	}

	allowedSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = struct{}{}
	}

	keys := make([]string, 0, len(members))
	for key := range members {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := allowedSet[key]; !ok {
			return nil, pkgerrors.NewValidationError(joinField(field, key), "field is not allowed here")
		}
	}

	for _, name := range required {
		raw, ok := members[name]
		if !ok || isNull(raw) {
			return nil, pkgerrors.NewValidationError(joinField(field, name), "is required")
		}
	}
	return members, nil
}

// decodeInto unmarshals raw into v, surfacing failures as validation errors on field
func decodeInto(raw []byte, field string, v interface{}) error {
	if err := unmarshalJSON(raw, v); err != nil {
		if pkgerrors.IsValidationError(err) {
			return err
		}
		return pkgerrors.NewValidationError(field, err.Error())
	}
	return nil
}

func joinField(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
