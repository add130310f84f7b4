package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"TERAPP_ENV", "TERAPP_API_URL", "TERAPP_DB", "TERAPP_DEBUG_LOG"} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := ConfigFromEnv()
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Empty(t, cfg.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_NamedEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERAPP_ENV", "Production")

	cfg := ConfigFromEnv()
	assert.Equal(t, "https://studant-depression-api.com", cfg.APIURL)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnv_ExplicitURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERAPP_ENV", "local")
	t.Setenv("TERAPP_API_URL", "https://example.test")
	t.Setenv("TERAPP_DB", "/tmp/terapp.db")

	cfg := ConfigFromEnv()
	assert.Equal(t, "https://example.test", cfg.APIURL)
	assert.Equal(t, "/tmp/terapp.db", cfg.DBPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown env", Config{APIURL: DefaultAPIURL, Env: "staging"}},
		{"bad scheme", Config{APIURL: "ftp://example.test"}},
		{"no host", Config{APIURL: "http://"}},
		{"empty", Config{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("TERAPP_API_URL")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("TERAPP_API_URL=https://dotenv.test\n"), 0o600))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "https://dotenv.test", ConfigFromEnv().APIURL)
}
