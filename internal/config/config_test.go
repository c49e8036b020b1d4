package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)

	assert.Equal(t, "openai", cfg.OpenAI.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Empty(t, cfg.OpenAI.APIKey)

	assert.Equal(t, "2024-01", cfg.Shopify.APIVersion)
	assert.Empty(t, cfg.Shopify.AccessToken)

	assert.Equal(t, "default-key", cfg.API.Key)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4")
	t.Setenv("SHOPIFY_ACCESS_TOKEN", "shpat-test")
	t.Setenv("API_KEY", "super-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4", cfg.OpenAI.Model)
	assert.Equal(t, "shpat-test", cfg.Shopify.AccessToken)
	assert.Equal(t, "super-secret", cfg.API.Key)
}
