package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FIREBASE_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.App.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FIREBASE_API_KEY", "test-key")
	t.Setenv("PORT", "9090")
	t.Setenv("BACKEND_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.AllowedOrigins)
}

func TestValidateMissingAPIKey(t *testing.T) {
	cfg := &Config{
		Server:  ServerConfig{Port: "8080"},
		Backend: BackendConfig{BaseURL: "http://localhost:5000"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FIREBASE_API_KEY")
}

func TestGetEnvAsIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	assert.Equal(t, 3, getEnvAsInt("REDIS_DB", 3))
}
