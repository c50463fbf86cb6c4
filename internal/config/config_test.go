package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("AUTH0_DOMAIN", "casting-agency.us.auth0.com")
	t.Setenv("API_AUDIENCE", "casting")
	t.Setenv("AUTH0_ISSUER", "")
	t.Setenv("JWKS_URL", "")
	t.Setenv("ALGORITHMS", "")
	t.Setenv("TABLE_PREFIX", "")
	t.Setenv("JWKS_FETCH_TIMEOUT", "")
	t.Setenv("JWKS_MIN_REFRESH_INTERVAL", "")
	t.Setenv("PAGE_SIZE", "")
	t.Setenv("PORT", "")
	t.Setenv("LOG_MAX_FILES", "")
}

func TestLoad_DerivesProviderURLs(t *testing.T) {
	setBaseEnv(t)

	cfg := Load()
	assert.Equal(t, "casting-agency.us.auth0.com", cfg.Auth0Domain)
	assert.Equal(t, "https://casting-agency.us.auth0.com/", cfg.Issuer)
	assert.Equal(t, "https://casting-agency.us.auth0.com/.well-known/jwks.json", cfg.JWKSURL)
	assert.Equal(t, []string{"RS256"}, cfg.Algorithms)
	assert.Equal(t, "test_", cfg.TablePrefix)
	assert.Equal(t, 5*time.Second, cfg.JWKSFetchTimeout)
	assert.Zero(t, cfg.JWKSMinRefreshInterval)
	assert.Equal(t, 10, cfg.PageSize)
	require.NoError(t, cfg.Validate())
}

func TestLoad_DomainWithSchemeAndOverrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("AUTH0_DOMAIN", "https://casting-agency.us.auth0.com/")
	t.Setenv("JWKS_URL", "http://localhost:9999/jwks.json")
	t.Setenv("ALGORITHMS", "RS256, PS256")
	t.Setenv("JWKS_FETCH_TIMEOUT", "2")
	t.Setenv("JWKS_MIN_REFRESH_INTERVAL", "30s")
	t.Setenv("TABLE_PREFIX", "ci_")

	cfg := Load()
	assert.Equal(t, "casting-agency.us.auth0.com", cfg.Auth0Domain)
	assert.Equal(t, "https://casting-agency.us.auth0.com/", cfg.Issuer)
	assert.Equal(t, "http://localhost:9999/jwks.json", cfg.JWKSURL)
	assert.Equal(t, []string{"RS256", "PS256"}, cfg.Algorithms)
	assert.Equal(t, 2*time.Second, cfg.JWKSFetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.JWKSMinRefreshInterval)
	assert.Equal(t, "ci_", cfg.TablePrefix)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing domain", func(c *Config) { c.Auth0Domain = "" }},
		{"missing audience", func(c *Config) { c.APIAudience = "" }},
		{"missing issuer", func(c *Config) { c.Issuer = "" }},
		{"symmetric algorithm", func(c *Config) { c.Algorithms = []string{"HS256"} }},
		{"no algorithms", func(c *Config) { c.Algorithms = nil }},
		{"tiny fetch timeout", func(c *Config) { c.JWKSFetchTimeout = time.Millisecond }},
		{"page size too large", func(c *Config) { c.PageSize = MaxPageSize + 1 }},
		{"unknown environment", func(c *Config) { c.Environment = "staging" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			cfg := Load()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSetupLogFile_KeepsNewestFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"casting-2020-01-01T00-00-00.log",
		"casting-2020-01-02T00-00-00.log",
		"casting-2020-01-03T00-00-00.log",
		"unrelated.log",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, "casting-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "casting-2020-01-03T00-00-00.log"), files[0])
	assert.Equal(t, f.Name(), files[1])
	assert.FileExists(t, filepath.Join(dir, "unrelated.log"))
}
