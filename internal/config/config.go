package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Token sources accepted in UNIT_TOKEN_SOURCE
const (
	TokenSourceEnv   = "env"
	TokenSourceFile  = "file"
	TokenSourceAWS   = "aws"
	TokenSourceVault = "vault"
	TokenSourceGCP   = "gcp"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig
	Token   TokenConfig
	AWS     AWSConfig
	Vault   VaultConfig
	GCP     GCPConfig
	Logger  LoggerConfig
	Metrics MetricsConfig
}

// APIConfig holds Unit API client configuration
type APIConfig struct {
	BaseURL   string  // e.g. https://api.s.unit.sh for sandbox
	Timeout   int     // Request timeout in seconds (default: 30)
	RateLimit float64 // Requests per second, 0 disables limiting
	RateBurst int
	UserAgent string
}

// TokenConfig says where the bearer token comes from
type TokenConfig struct {
	Source string // env, file, aws, vault, gcp
	Value  string // UNIT_TOKEN, used by the env source
	Path   string // file path, Secrets Manager name, Vault path or GCP secret id
	Field  string // JSON member holding the token inside a structured secret
}

// AWSConfig holds AWS Secrets Manager configuration
type AWSConfig struct {
	Region   string
	Profile  string
	Endpoint string // Custom endpoint (for LocalStack)
}

// VaultConfig holds HashiCorp Vault configuration
type VaultConfig struct {
	Address   string
	Token     string
	RoleID    string
	SecretID  string
	Mount     string
	KVVersion string
	Namespace string
}

// GCPConfig holds Google Cloud Secret Manager configuration.
// Credentials come from Application Default Credentials.
type GCPConfig struct {
	ProjectID string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// MetricsConfig holds the Prometheus exposition configuration
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:   getEnv("UNIT_API_URL", "https://api.s.unit.sh"),
			Timeout:   getEnvAsInt("UNIT_TIMEOUT", 30),
			RateLimit: getEnvAsFloat("UNIT_RATE_LIMIT", 0),
			RateBurst: getEnvAsInt("UNIT_RATE_BURST", 1),
			UserAgent: getEnv("UNIT_USER_AGENT", ""),
		},
		Token: TokenConfig{
			Source: getEnv("UNIT_TOKEN_SOURCE", TokenSourceEnv),
			Value:  os.Getenv("UNIT_TOKEN"),
			Path:   getEnv("UNIT_TOKEN_PATH", ""),
			Field:  getEnv("UNIT_TOKEN_FIELD", "token"),
		},
		AWS: AWSConfig{
			Region:   getEnv("AWS_REGION", "us-east-1"),
			Profile:  getEnv("AWS_PROFILE", ""),
			Endpoint: getEnv("AWS_ENDPOINT", ""),
		},
		Vault: VaultConfig{
			Address:   getEnv("VAULT_ADDR", ""),
			Token:     getEnv("VAULT_TOKEN", ""),
			RoleID:    getEnv("VAULT_ROLE_ID", ""),
			SecretID:  getEnv("VAULT_SECRET_ID", ""),
			Mount:     getEnv("VAULT_MOUNT", "secret"),
			KVVersion: getEnv("VAULT_KV_VERSION", "v2"),
			Namespace: getEnv("VAULT_NAMESPACE", ""),
		},
		GCP: GCPConfig{
			ProjectID: getEnv("GCP_PROJECT_ID", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("UNIT_METRICS", false),
			Addr:    getEnv("METRICS_ADDR", ":9090"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected token source has what it needs
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("UNIT_API_URL is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("UNIT_TIMEOUT must be positive")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("UNIT_RATE_LIMIT must not be negative")
	}

	switch c.Token.Source {
	case TokenSourceEnv:
		if c.Token.Value == "" {
			return fmt.Errorf("UNIT_TOKEN is required")
		}
	case TokenSourceFile:
		if c.Token.Path == "" {
			return fmt.Errorf("UNIT_TOKEN_PATH is required for the file token source")
		}
	case TokenSourceAWS:
		if c.Token.Path == "" {
			return fmt.Errorf("UNIT_TOKEN_PATH is required for the aws token source")
		}
		if c.AWS.Region == "" {
			return fmt.Errorf("AWS_REGION is required for the aws token source")
		}
	case TokenSourceVault:
		if c.Token.Path == "" {
			return fmt.Errorf("UNIT_TOKEN_PATH is required for the vault token source")
		}
		if c.Vault.Address == "" {
			return fmt.Errorf("VAULT_ADDR is required for the vault token source")
		}
		if c.Vault.Token == "" && (c.Vault.RoleID == "" || c.Vault.SecretID == "") {
			return fmt.Errorf("VAULT_TOKEN or VAULT_ROLE_ID and VAULT_SECRET_ID are required for the vault token source")
		}
	case TokenSourceGCP:
		if c.Token.Path == "" {
			return fmt.Errorf("UNIT_TOKEN_PATH is required for the gcp token source")
		}
		if c.GCP.ProjectID == "" && !strings.HasPrefix(c.Token.Path, "projects/") {
			return fmt.Errorf("GCP_PROJECT_ID is required unless UNIT_TOKEN_PATH is a full secret resource name")
		}
	default:
		return fmt.Errorf("unsupported UNIT_TOKEN_SOURCE: %s", c.Token.Source)
	}
	return nil
}

// RequestTimeout returns the API timeout as a duration
func (c *APIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
