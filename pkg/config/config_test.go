package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TIME_ZONE", "")
	t.Setenv("PORT", "")
	t.Setenv("TODOIST_SECRET_ID", "")
	t.Setenv("API_KEY", "")
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("TODOIST_SECRET_ID", "tok-123")
	t.Setenv("TIME_ZONE", "Europe/Madrid")
	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "tok-123", cfg.APIToken)
	assert.Equal(t, "Europe/Madrid", cfg.Timezone)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("TODOIST_SECRET_ID", "tok-123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.Timezone)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadMissingToken(t *testing.T) {
	isolate(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TODOIST_SECRET_ID")
}

func TestLoadInvalidPort(t *testing.T) {
	isolate(t)
	t.Setenv("TODOIST_SECRET_ID", "tok-123")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)
	t.Setenv("TODOIST_SECRET_ID", "tok-123")

	require.NoError(t, Save(&Config{Timezone: "America/New_York", Port: 4000}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", cfg.Timezone)
	assert.Equal(t, 4000, cfg.Port)
}
