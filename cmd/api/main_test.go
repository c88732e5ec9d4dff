package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"aps-bridge/internal/config"
)

var configEnv = []string{
	"APP_NAME", "APP_ENV", "APP_HOST", "APP_PORT", "APP_DEBUG", "LOG_LEVEL", "LOG_FORMAT",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
	"CORS_ALLOWED_ORIGINS", "CORS_ALLOWED_METHODS", "CORS_ALLOWED_HEADERS", "CORS_MAX_AGE",
	"APS_PLACEHOLDER_URN", "UPLOAD_MAX_BODY_BYTES",
}

// clearEnv blanks every config variable; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

// runFlags parses args with the real flag set and applies them to a default config.
func runFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	a := newCLI()
	var applyErr error
	a.Action = func(c *cli.Context) error {
		applyErr = applyFlags(c, cfg)
		return nil
	}
	require.NoError(t, a.Run(append([]string{"aps-bridge"}, args...)))
	return cfg, applyErr
}

func TestFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")

	cfg, err := runFlags(t, "--host", "127.0.0.1", "-p", "3100", "--debug=false", "--log-level", "warn")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:3100", cfg.Addr())
	assert.False(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestUnsetFlagsKeepEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")

	cfg, err := runFlags(t)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.True(t, cfg.Debug)
}

func TestInvalidPortFlag(t *testing.T) {
	clearEnv(t)
	_, err := runFlags(t, "--port", "99999")
	assert.Error(t, err)
}
