package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kevin07696/unit-client/internal/adapters/ports"
	"github.com/kevin07696/unit-client/pkg/encoding"
	"go.uber.org/zap"
)

// ErrEmptyToken is returned when a source resolves to a blank token
var ErrEmptyToken = errors.New("unit api token is empty")

// StaticTokenSource serves a token known up front, such as one read from UNIT_TOKEN
type StaticTokenSource string

// Token returns the static token
func (s StaticTokenSource) Token(ctx context.Context) (string, error) {
	token := strings.TrimSpace(string(s))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

// SecretTokenSource reads the token from a secret store. A secret holding a JSON object
// yields the member named by field; any other secret is used verbatim.
type SecretTokenSource struct {
	reader ports.SecretReader
	path   string
	field  string
	logger *zap.Logger
}

// NewSecretTokenSource creates a token source over reader for the secret at path
func NewSecretTokenSource(reader ports.SecretReader, path, field string, logger *zap.Logger) *SecretTokenSource {
	if field == "" {
		field = "token"
	}
	return &SecretTokenSource{
		reader: reader,
		path:   path,
		field:  field,
		logger: logger,
	}
}

// Token resolves the current token
func (s *SecretTokenSource) Token(ctx context.Context) (string, error) {
	secret, err := s.reader.GetSecret(ctx, s.path)
	if err != nil {
		return "", fmt.Errorf("failed to load unit api token: %w", err)
	}

	token := tokenFromValue(secret.Value, s.field)
	if token == "" {
		return "", ErrEmptyToken
	}

	s.logger.Debug("Unit API token loaded",
		zap.String("path", s.path),
		zap.String("version", secret.Version),
	)
	return token, nil
}

func tokenFromValue(value, field string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "{") {
		var members map[string]interface{}
		if err := encoding.Unmarshal([]byte(value), &members); err == nil {
			if token, ok := members[field].(string); ok {
				return strings.TrimSpace(token)
			}
			return ""
		}
	}
	return value
}
