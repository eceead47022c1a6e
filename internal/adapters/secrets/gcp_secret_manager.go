package secrets

import (
	"context"
	"fmt"
	"strings"
	"time"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/kevin07696/unit-client/internal/adapters/ports"
	"go.uber.org/zap"
)

// GCPSecretManagerConfig contains configuration for GCP Secret Manager
type GCPSecretManagerConfig struct {
	// Project holding the secret. Not needed when paths are full resource names.
	ProjectID string

	CacheTTL    time.Duration
	EnableCache bool
}

// DefaultGCPSecretManagerConfig returns default configuration
func DefaultGCPSecretManagerConfig(projectID string) *GCPSecretManagerConfig {
	return &GCPSecretManagerConfig{
		ProjectID:   projectID,
		CacheTTL:    5 * time.Minute,
		EnableCache: true,
	}
}

// secretVersionAccessor is the subset of the Secret Manager client the adapter calls
type secretVersionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// gcpSecretManagerAdapter implements the SecretReader port for Google Cloud Secret Manager
type gcpSecretManagerAdapter struct {
	client    secretVersionAccessor
	projectID string
	logger    *zap.Logger
	cache     *secretCache
}

// NewGCPSecretManagerAdapter creates a Secret Manager adapter using Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS, workload identity or gcloud login).
// The underlying gRPC client lives as long as the process.
func NewGCPSecretManagerAdapter(ctx context.Context, cfg *GCPSecretManagerConfig, logger *zap.Logger) (ports.SecretReader, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP Secret Manager client: %w", err)
	}

	logger.Info("GCP Secret Manager adapter initialized",
		zap.String("project_id", cfg.ProjectID),
		zap.Bool("cache_enabled", cfg.EnableCache),
		zap.Duration("cache_ttl", cfg.CacheTTL),
	)

	return newGCPSecretManagerAdapter(client, cfg, logger), nil
}

func newGCPSecretManagerAdapter(client secretVersionAccessor, cfg *GCPSecretManagerConfig, logger *zap.Logger) *gcpSecretManagerAdapter {
	return &gcpSecretManagerAdapter{
		client:    client,
		projectID: cfg.ProjectID,
		logger:    logger,
		cache:     newSecretCache(cfg.EnableCache, cfg.CacheTTL),
	}
}

// versionName expands a secret id into projects/{project}/secrets/{id}/versions/{version}.
// A path starting with "projects/" is taken as the secret resource name.
func (a *gcpSecretManagerAdapter) versionName(path, version string) string {
	name := path
	if !strings.HasPrefix(path, "projects/") {
		name = fmt.Sprintf("projects/%s/secrets/%s", a.projectID, path)
	}
	return fmt.Sprintf("%s/versions/%s", strings.TrimSuffix(name, "/"), version)
}

// GetSecret retrieves the latest version of a secret
func (a *gcpSecretManagerAdapter) GetSecret(ctx context.Context, path string) (*ports.Secret, error) {
	if cached := a.cache.get(path); cached != nil {
		a.logger.Debug("Secret retrieved from cache", zap.String("path", path))
		return cached, nil
	}

	secret, err := a.access(ctx, path, "latest")
	if err != nil {
		return nil, err
	}
	a.cache.set(path, secret)
	return secret, nil
}

// GetSecretVersion retrieves a specific version of a secret
func (a *gcpSecretManagerAdapter) GetSecretVersion(ctx context.Context, path string, version string) (*ports.Secret, error) {
	return a.access(ctx, path, version)
}

func (a *gcpSecretManagerAdapter) access(ctx context.Context, path, version string) (*ports.Secret, error) {
	name := a.versionName(path, version)
	a.logger.Info("Retrieving secret from GCP Secret Manager", zap.String("name", name))

	startTime := time.Now()
	result, err := a.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		a.logger.Error("Failed to access GCP secret",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to access GCP secret %s: %w", path, err)
	}

	a.logger.Info("Secret retrieved successfully",
		zap.String("name", name),
		zap.Duration("elapsed", time.Since(startTime)),
	)

	return &ports.Secret{
		Value:   string(result.GetPayload().GetData()),
		Version: versionFromName(result.GetName()),
		Metadata: map[string]string{
			"name": result.GetName(),
		},
	}, nil
}

// versionFromName returns the trailing version segment of a secret version resource name
func versionFromName(name string) string {
	if i := strings.LastIndex(name, "/versions/"); i >= 0 {
		return name[i+len("/versions/"):]
	}
	return ""
}
