package config

import (
	"testing"

	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.IsTest = true
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.PublicBaseURL)
	assert.Equal(t, "./data", cfg.LocalStore.Dir)
	assert.Equal(t, 10, cfg.Supabase.TimeoutSeconds)
	assert.Equal(t, 60, cfg.Extractor.TimeoutSeconds)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestOfflineModeIsNotAnError(t *testing.T) {
	// No Supabase or extractor credentials in the environment; the service
	// still starts, in offline/manual mode.
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.False(t, cfg.Supabase.IsConfigured())
	assert.False(t, cfg.Extractor.IsConfigured())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")
	t.Setenv("EXTRACTOR_API_KEY", "sk-test")
	t.Setenv("PUBLIC_BASE_URL", "https://roteiro.app")
	t.Setenv("LOCAL_STORE_DIR", "/tmp/roteiro")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.Supabase.IsConfigured())
	assert.True(t, cfg.Extractor.IsConfigured())
	assert.Equal(t, "https://roteiro.app", cfg.Server.PublicBaseURL)
	assert.Equal(t, "/tmp/roteiro", cfg.LocalStore.Dir)
}

func TestSupabaseNeedsBothURLAndKey(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Supabase.IsConfigured(), "a URL without a key stays offline")
}

func TestInvalidSupabaseURLRejected(t *testing.T) {
	t.Setenv("SUPABASE_URL", "not a url")
	t.Setenv("SUPABASE_SERVICE_KEY", "service-key")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server: ServerConfig{
			Port:           "8080",
			AllowedOrigins: []string{"https://roteiro.app"},
		},
		LocalStore: LocalStoreConfig{Dir: "./data"},
	}
	assert.NoError(t, validateConfig(valid))

	noPort := *valid
	noPort.Server.Port = ""
	assert.Error(t, validateConfig(&noPort))

	noDir := *valid
	noDir.LocalStore.Dir = ""
	assert.Error(t, validateConfig(&noDir))

	badOrigin := *valid
	badOrigin.Server.AllowedOrigins = []string{"nope"}
	assert.Error(t, validateConfig(&badOrigin))

	wildcard := *valid
	wildcard.Server.AllowedOrigins = []string{"*"}
	assert.NoError(t, validateConfig(&wildcard))
}
