package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	cfg := defaults()
	err := parseFlags(&cfg, []string{"-a", "http://example.com:9000", "-x", "ignored", "-d=/var/lib/bookup.db", "-t", "5", "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://example.com:9000", cfg.BackendURL)
	assert.Equal(t, "/var/lib/bookup.db", cfg.DatabasePath)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseFlags_TimeoutUntouchedWhenAbsent(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond

	require.NoError(t, parseFlags(&cfg, []string{"-a", "http://h"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

func TestParseFlags_BadValue(t *testing.T) {
	cfg := defaults()
	require.Error(t, parseFlags(&cfg, []string{"-t", "soon"}))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, `{"backend_url": "http://from-json:8000", "log_level": "warn"}`)
	t.Setenv(EnvStoragePassphrase, "")
	t.Setenv(EnvGoogleClientSecret, "")

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://from-flag:8000"})
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:8000", cfg.BackendURL)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("BOOKUP_CONFIG", "")
	_, err := LoadConfig([]string{"-a", "not a url"})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
