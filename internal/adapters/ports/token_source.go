package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (the Unit API token)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretReader defines the port for reading secrets from a secret management service.
// Supports multiple backends: AWS Secrets Manager, HashiCorp Vault, the local filesystem.
// Path format depends on implementation:
//   - AWS: secret name or full ARN, e.g. "unit/api-token"
//   - Vault: path below the KV mount, e.g. "unit/api-token"
//   - Local: file path relative to the base directory
type SecretReader interface {
	// GetSecret retrieves the current version of a secret
	GetSecret(ctx context.Context, path string) (*Secret, error)

	// GetSecretVersion retrieves a specific version of a secret.
	// Useful during token rotation to fall back to the previous token.
	GetSecretVersion(ctx context.Context, path string, version string) (*Secret, error)
}

// TokenSource supplies the bearer token used to authenticate against the Unit API
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
