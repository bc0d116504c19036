package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 12*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.VerifyEmailDomain)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("COACH_TEST_ONLY_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("COACH_TEST_ONLY_KEY") })

	Load(envFile)

	assert.Equal(t, "from-file", os.Getenv("COACH_TEST_ONLY_KEY"))
}

func TestLoad_ParsesOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("REFRESH_TOKEN_TTL", "not-a-duration")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "true")

	cfg := Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.VerifyEmailDomain)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DBUrl:           "postgres://localhost/db",
			JWTSecret:       "secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: time.Hour,
			LogFormat:       "json",
			Timezone:        "UTC",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "missing db url", mutate: func(c *Config) { c.DBUrl = "" }, wantErr: "DATABASE_URL"},
		{name: "zero access ttl", mutate: func(c *Config) { c.AccessTokenTTL = 0 }, wantErr: "ACCESS_TOKEN_TTL"},
		{name: "negative refresh ttl", mutate: func(c *Config) { c.RefreshTokenTTL = -time.Second }, wantErr: "REFRESH_TOKEN_TTL"},
		{name: "bad log format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "bad timezone", mutate: func(c *Config) { c.Timezone = "Mars/Base" }, wantErr: "APP_TIMEZONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
