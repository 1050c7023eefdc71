// internal/config/config_test.go
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inn-Chain/innchain-contract/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "owner", cfg.OwnerIdentity)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  http_port: 9090
dependencies:
  catalog_url: http://catalog:8081
auth:
  jwt_secret: file_secret
  token_ttl: 2h
ledger:
  owner_identity: acct:arbiter
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "http://catalog:8081", cfg.CatalogURL)
	assert.Equal(t, "file_secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "acct:arbiter", cfg.OwnerIdentity)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  http_port: 9090
auth:
  jwt_secret: file_secret
`), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "env_secret")
	t.Setenv("OWNER_IDENTITY", "acct:env-owner")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTPPort)
	assert.Equal(t, "env_secret", cfg.JWTSecret)
	assert.Equal(t, "acct:env-owner", cfg.OwnerIdentity)
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service: [not a map"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}
