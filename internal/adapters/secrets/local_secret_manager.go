package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevin07696/unit-client/internal/adapters/ports"
	"github.com/kevin07696/unit-client/pkg/encoding"
	"go.uber.org/zap"
)

// localSecretManager implements SecretReader using local filesystem
// WARNING: This is for development only. Use AWS Secrets Manager or Vault in production.
type localSecretManager struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalSecretManager creates a new local filesystem secret reader rooted at basePath
func NewLocalSecretManager(basePath string, logger *zap.Logger) ports.SecretReader {
	return &localSecretManager{
		basePath: basePath,
		logger:   logger,
	}
}

// GetSecret retrieves a secret from the local filesystem
func (m *localSecretManager) GetSecret(ctx context.Context, secretPath string) (*ports.Secret, error) {
	filePath := secretPath
	if !filepath.IsAbs(secretPath) {
		filePath = filepath.Join(m.basePath, secretPath)
	}

	m.logger.Debug("Reading secret from filesystem",
		zap.String("path", secretPath),
	)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("secret not found: %s", secretPath)
		}
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	// Support both plain text and JSON format
	var secretData struct {
		Value     string            `json:"value"`
		Version   string            `json:"version"`
		Tags      map[string]string `json:"tags"`
		CreatedAt string            `json:"created_at"`
	}
	if err := encoding.Unmarshal(data, &secretData); err == nil && secretData.Value != "" {
		version := secretData.Version
		if version == "" {
			version = "v1"
		}
		return &ports.Secret{
			Value:     secretData.Value,
			Version:   version,
			Metadata:  secretData.Tags,
			CreatedAt: secretData.CreatedAt,
		}, nil
	}

	// Return as plain text if not JSON
	return &ports.Secret{
		Value:   strings.TrimSpace(string(data)),
		Version: "v1",
	}, nil
}

// GetSecretVersion only knows the single version held in the file
func (m *localSecretManager) GetSecretVersion(ctx context.Context, secretPath string, version string) (*ports.Secret, error) {
	secret, err := m.GetSecret(ctx, secretPath)
	if err != nil {
		return nil, err
	}
	if secret.Version != version {
		return nil, fmt.Errorf("secret version not found: %s %s", secretPath, version)
	}
	return secret, nil
}
