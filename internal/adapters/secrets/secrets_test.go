package secrets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/googleapis/gax-go/v2"
	"github.com/kevin07696/unit-client/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSecretsManager struct {
	calls  []*secretsmanager.GetSecretValueInput
	output *secretsmanager.GetSecretValueOutput
	err    error
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls = append(f.calls, params)
	if f.err != nil {
		return nil, f.err
	}
	return f.output, nil
}

type fakeSecretVersionAccessor struct {
	names []string
	data  map[string]string
}

func (f *fakeSecretVersionAccessor) AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.names = append(f.names, req.GetName())
	value, ok := f.data[req.GetName()]
	if !ok {
		return nil, errors.New("rpc error: code = NotFound")
	}
	name := req.GetName()
	if strings.HasSuffix(name, "/versions/latest") {
		name = strings.TrimSuffix(name, "latest") + "3"
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name:    name,
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(value)},
	}, nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLocalSecretManager_PlainText(t *testing.T) {
	path := writeFile(t, "token", "  v2.public.abc\n")
	reader := NewLocalSecretManager(filepath.Dir(path), zap.NewNop())

	secret, err := reader.GetSecret(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "v2.public.abc", secret.Value)
	assert.Equal(t, "v1", secret.Version)
}

func TestLocalSecretManager_JSON(t *testing.T) {
	path := writeFile(t, "token.json", `{"value":"v2.public.abc","version":"7","tags":{"env":"sandbox"}}`)
	reader := NewLocalSecretManager("/ignored", zap.NewNop())

	secret, err := reader.GetSecret(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "v2.public.abc", secret.Value)
	assert.Equal(t, "7", secret.Version)
	assert.Equal(t, "sandbox", secret.Metadata["env"])

	_, err = reader.GetSecretVersion(context.Background(), path, "7")
	assert.NoError(t, err)
	_, err = reader.GetSecretVersion(context.Background(), path, "6")
	assert.Error(t, err)
}

func TestLocalSecretManager_Missing(t *testing.T) {
	reader := NewLocalSecretManager(t.TempDir(), zap.NewNop())

	_, err := reader.GetSecret(context.Background(), "absent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret not found")
}

func TestStaticTokenSource(t *testing.T) {
	token, err := StaticTokenSource(" tok ").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	_, err = StaticTokenSource("  ").Token(context.Background())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestSecretTokenSource_Field(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{name: "plain value", content: "tok-plain", want: "tok-plain"},
		{name: "json member", content: `{"token":"tok-json","org":"acme"}`, want: "tok-json"},
		{name: "json without member", content: `{"org":"acme"}`, wantErr: ErrEmptyToken},
		{name: "blank", content: "\n", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "token", tt.content)
			source := NewSecretTokenSource(NewLocalSecretManager(filepath.Dir(path), zap.NewNop()), "token", "", zap.NewNop())

			token, err := source.Token(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestAWSSecretsManagerAdapter_GetSecretCaches(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeSecretsManager{output: &secretsmanager.GetSecretValueOutput{
		ARN:          aws.String("arn:aws:secretsmanager:us-east-1:1:secret:unit"),
		Name:         aws.String("unit/api-token"),
		SecretString: aws.String(`{"token":"tok-aws"}`),
		VersionId:    aws.String("v-1"),
		CreatedDate:  &created,
	}}
	adapter := newAWSSecretsManagerAdapter(fake, DefaultAWSSecretsManagerConfig("us-east-1"), zap.NewNop())

	secret, err := adapter.GetSecret(context.Background(), "unit/api-token")
	require.NoError(t, err)
	assert.Equal(t, "v-1", secret.Version)
	assert.Equal(t, "2024-03-01T12:00:00Z", secret.CreatedAt)
	assert.Equal(t, "unit/api-token", secret.Metadata["name"])

	source := NewSecretTokenSource(adapter, "unit/api-token", "token", zap.NewNop())
	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-aws", token)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "unit/api-token", aws.ToString(fake.calls[0].SecretId))
}

func TestAWSSecretsManagerAdapter_Errors(t *testing.T) {
	fake := &fakeSecretsManager{err: errors.New("access denied")}
	cfg := DefaultAWSSecretsManagerConfig("us-east-1")
	cfg.EnableCache = false
	adapter := newAWSSecretsManagerAdapter(fake, cfg, zap.NewNop())

	_, err := adapter.GetSecret(context.Background(), "unit/api-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	_, err = adapter.GetSecretVersion(context.Background(), "unit/api-token", "v-0")
	require.Error(t, err)
	assert.Equal(t, "v-0", aws.ToString(fake.calls[1].VersionId))
}

func TestGCPSecretManagerAdapter(t *testing.T) {
	fake := &fakeSecretVersionAccessor{data: map[string]string{
		"projects/bank-prod/secrets/unit-api-token/versions/latest": `{"token":"tok-gcp"}`,
		"projects/bank-prod/secrets/unit-api-token/versions/2":      "tok-old",
		"projects/other/secrets/unit/versions/latest":               "tok-other",
	}}
	adapter := newGCPSecretManagerAdapter(fake, DefaultGCPSecretManagerConfig("bank-prod"), zap.NewNop())

	source := NewSecretTokenSource(adapter, "unit-api-token", "token", zap.NewNop())
	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-gcp", token)

	secret, err := adapter.GetSecret(context.Background(), "unit-api-token")
	require.NoError(t, err)
	assert.Equal(t, "3", secret.Version)
	assert.Len(t, fake.names, 1, "second read is served from cache")

	old, err := adapter.GetSecretVersion(context.Background(), "unit-api-token", "2")
	require.NoError(t, err)
	assert.Equal(t, "tok-old", old.Value)
	assert.Equal(t, "2", old.Version)

	other, err := adapter.GetSecret(context.Background(), "projects/other/secrets/unit")
	require.NoError(t, err)
	assert.Equal(t, "tok-other", other.Value)

	_, err = adapter.GetSecret(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NotFound")
}

func vaultServer(t *testing.T, wantToken string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/auth/approle/login":
			_, _ = w.Write([]byte(`{"auth":{"client_token":"s.approle"}}`))
		case "/v1/secret/data/unit/api-token":
			if r.Header.Get("X-Vault-Token") != wantToken {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
				return
			}
			version := r.URL.Query().Get("version")
			if version == "" {
				version = "3"
			}
			_, _ = w.Write([]byte(`{"data":{"data":{"token":"tok-v` + version + `","owner":"payments"},"metadata":{"version":` + version + `,"created_time":"2024-01-01T00:00:00Z"}}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"errors":[]}`))
		}
	}))
}

func TestVaultAdapter_TokenAuth(t *testing.T) {
	server := vaultServer(t, "s.root")
	defer server.Close()

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "s.root"
	cfg.Field = "token"
	reader, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := reader.GetSecret(context.Background(), "unit/api-token")
	require.NoError(t, err)
	assert.Equal(t, "tok-v3", secret.Value)
	assert.Equal(t, "3", secret.Version)
	assert.Equal(t, "payments", secret.Metadata["owner"])

	previous, err := reader.GetSecretVersion(context.Background(), "unit/api-token", "2")
	require.NoError(t, err)
	assert.Equal(t, "tok-v2", previous.Value)
}

func TestVaultAdapter_AppRole(t *testing.T) {
	server := vaultServer(t, "s.approle")
	defer server.Close()

	cfg := DefaultVaultConfig(server.URL)
	cfg.AuthMethod = "approle"
	cfg.RoleID = "role"
	cfg.SecretID = "secret-id"
	cfg.Field = "token"
	reader, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	token, err := NewSecretTokenSource(reader, "unit/api-token", "token", zap.NewNop()).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-v3", token)
}

func TestVaultAdapter_MissingCredentials(t *testing.T) {
	_, err := NewVaultAdapter(context.Background(), DefaultVaultConfig("http://127.0.0.1:1"), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token is required")
}

func TestNewTokenSource(t *testing.T) {
	path := writeFile(t, "unit-token", "tok-file")

	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{
			name: "env",
			cfg:  &config.Config{Token: config.TokenConfig{Source: config.TokenSourceEnv, Value: "tok-env"}},
			want: "tok-env",
		},
		{
			name: "file",
			cfg:  &config.Config{Token: config.TokenConfig{Source: config.TokenSourceFile, Path: path, Field: "token"}},
			want: "tok-file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := NewTokenSource(context.Background(), tt.cfg, zap.NewNop())
			require.NoError(t, err)

			token, err := source.Token(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}

	_, err := NewTokenSource(context.Background(), &config.Config{Token: config.TokenConfig{Source: "azure"}}, zap.NewNop())
	assert.Error(t, err)
}
