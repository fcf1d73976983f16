package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SENTIMENTO_ADDR", "SENTIMENTO_SEED", "SENTIMENTO_LOG_LEVEL",
		"SENTIMENTO_VOCABULARY", "SENTIMENTO_MODEL", "SENTIMENTO_CACHE_TTL",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "REDIS_DB",
		"SENTIMENTO_UPLOAD_RATE", "SENTIMENTO_UPLOAD_BURST",
	} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SENTIMENTO_ADDR", ":9090")
	t.Setenv("SENTIMENTO_SEED", "42")
	t.Setenv("SENTIMENTO_LOG_LEVEL", "debug")
	t.Setenv("SENTIMENTO_VOCABULARY", "lexicon.yaml")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SENTIMENTO_CACHE_TTL", "90m")
	t.Setenv("SENTIMENTO_UPLOAD_RATE", "0.5")
	t.Setenv("SENTIMENTO_UPLOAD_BURST", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "lexicon.yaml", cfg.Vocabulary)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.CacheTTL)
	assert.InDelta(t, 0.5, cfg.UploadRate, 1e-9)
	assert.Equal(t, 2, cfg.UploadBurst)
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"seed", "SENTIMENTO_SEED", "abc"},
		{"redis db", "REDIS_DB", "x"},
		{"ttl", "SENTIMENTO_CACHE_TTL", "forever"},
		{"upload rate", "SENTIMENTO_UPLOAD_RATE", "fast"},
		{"upload burst", "SENTIMENTO_UPLOAD_BURST", "1.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SENTIMENTO_ADDR")

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config", "envs"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config", "envs", ".env.test"),
		[]byte("SENTIMENTO_ADDR=:7070\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		os.Unsetenv("SENTIMENTO_ADDR")
	})

	cfg, err := Load("test")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestEnvFile(t *testing.T) {
	assert.Equal(t, ".env", EnvFile(""))
	assert.Equal(t, "config/envs/.env.dev", EnvFile("dev"))
}
