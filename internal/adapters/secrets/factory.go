package secrets

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/kevin07696/unit-client/internal/adapters/ports"
	"github.com/kevin07696/unit-client/internal/config"
	"go.uber.org/zap"
)

// NewTokenSource builds the token source selected by UNIT_TOKEN_SOURCE
func NewTokenSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.TokenSource, error) {
	switch cfg.Token.Source {
	case config.TokenSourceEnv:
		return StaticTokenSource(cfg.Token.Value), nil

	case config.TokenSourceFile:
		reader := NewLocalSecretManager(filepath.Dir(cfg.Token.Path), logger)
		return NewSecretTokenSource(reader, filepath.Base(cfg.Token.Path), cfg.Token.Field, logger), nil

	case config.TokenSourceAWS:
		awsCfg := DefaultAWSSecretsManagerConfig(cfg.AWS.Region)
		awsCfg.Profile = cfg.AWS.Profile
		awsCfg.Endpoint = cfg.AWS.Endpoint
		reader, err := NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)
		if err != nil {
			return nil, err
		}
		return NewSecretTokenSource(reader, cfg.Token.Path, cfg.Token.Field, logger), nil

	case config.TokenSourceVault:
		vaultCfg := DefaultVaultConfig(cfg.Vault.Address)
		vaultCfg.Token = cfg.Vault.Token
		if cfg.Vault.Token == "" {
			vaultCfg.AuthMethod = "approle"
			vaultCfg.RoleID = cfg.Vault.RoleID
			vaultCfg.SecretID = cfg.Vault.SecretID
		}
		vaultCfg.MountPath = cfg.Vault.Mount
		vaultCfg.KVVersion = cfg.Vault.KVVersion
		vaultCfg.Namespace = cfg.Vault.Namespace
		vaultCfg.Field = cfg.Token.Field
		reader, err := NewVaultAdapter(ctx, vaultCfg, logger)
		if err != nil {
			return nil, err
		}
		return NewSecretTokenSource(reader, cfg.Token.Path, cfg.Token.Field, logger), nil

	case config.TokenSourceGCP:
		reader, err := NewGCPSecretManagerAdapter(ctx, DefaultGCPSecretManagerConfig(cfg.GCP.ProjectID), logger)
		if err != nil {
			return nil, err
		}
		return NewSecretTokenSource(reader, cfg.Token.Path, cfg.Token.Field, logger), nil

	default:
		return nil, fmt.Errorf("unsupported token source: %s", cfg.Token.Source)
	}
}
