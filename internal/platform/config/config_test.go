package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Addr:         ":8080",
		DatabaseURL:  "postgres://localhost/leavehub",
		JWTSecret:    "secret",
		Environment:  "development",
		MaxBodyBytes: 1048576,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cfg := validConfig()
	cfg.DatabaseURL = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.JWTSecret = " "
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.MaxBodyBytes = 100
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Environment = "production"
	cfg.RunSeed = true
	assert.Error(t, cfg.Validate())
	cfg.SeedAdminPassword = "ChangeMe123!"
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.AllowedOrigins)
	assert.True(t, cfg.RunMigrations)
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	cfg := Load()
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
}
