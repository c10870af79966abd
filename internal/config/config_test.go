package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entnt/dental-center/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, config.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Equal(t, config.VerifierPlaintext, cfg.Auth.Verifier)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DENTAL_STORAGE_BACKEND", "sqlite")
	t.Setenv("DENTAL_AUTH_VERIFIER", "bcrypt")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, config.VerifierBcrypt, cfg.Auth.Verifier)
}

func TestRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DENTAL_STORAGE_BACKEND", "bolt")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestRejectsUnknownVerifier(t *testing.T) {
	t.Setenv("DENTAL_AUTH_VERIFIER", "md5")

	_, err := config.LoadConfig()
	assert.Error(t, err)
}
