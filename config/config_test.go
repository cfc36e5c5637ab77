package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets the ivl variables for the duration of the test. They must
// be unset, not empty, for godotenv to fill them.
func clearEnv(t *testing.T) {
	for _, key := range []string{"IVL_LEDGER", "IVL_DB", "IVL_CURRENCY", "IVL_LOG_LEVEL", "IVL_PORT", "IVL_DEV_MODE"} {
		t.Setenv(key, "") // restores the original value on cleanup
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "transactions.jsonl", cfg.LedgerPath)
	assert.Equal(t, "", cfg.DatabasePath)
	assert.Equal(t, "IDR", cfg.Currency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("IVL_LEDGER", "sample")
	t.Setenv("IVL_PORT", "9000")
	t.Setenv("IVL_DEV_MODE", "true")
	t.Setenv("IVL_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sample", cfg.LedgerPath)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("IVL_DB=ledger.db\nIVL_CURRENCY=USD\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "ledger.db", cfg.DatabasePath)
	assert.Equal(t, "USD", cfg.Currency)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("IVL_PORT", "http")
	t.Setenv("IVL_DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no source", Config{Currency: "IDR", Port: 8080}},
		{"currency", Config{LedgerPath: "x", Currency: "Rupiah", Port: 8080}},
		{"port", Config{LedgerPath: "x", Currency: "IDR", Port: 70000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
