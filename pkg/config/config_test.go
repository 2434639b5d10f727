package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, ScorerToken, cfg.Match.FallbackScorer)
	assert.Equal(t, 4, cfg.Match.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 25<<20, cfg.AI.TranscribeMaxSize)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Memory")
	v.Set("AI_PROVIDER", "anthropic")
	v.Set("MATCH_FALLBACK_SCORER", "trigram")
	v.Set("MATCH_CONCURRENCY", "8")
	v.Set("AI_TIMEOUT_SECONDS", 5)
	v.Set("HTTP_PORT", "9000")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, ProviderAnthropic, cfg.AI.Provider)
	assert.Equal(t, ScorerTrigram, cfg.Match.FallbackScorer)
	assert.Equal(t, 8, cfg.Match.Concurrency)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 9000, cfg.HTTP.Port)
}

func TestFromViper_ValoresInvalidos(t *testing.T) {
	for key, val := range map[string]any{
		"STORAGE_DRIVER":        "sqlite",
		"AI_PROVIDER":           "gemini",
		"MATCH_FALLBACK_SCORER": "levenshtein",
		"MATCH_CONCURRENCY":     0,
	} {
		v := viper.New()
		v.Set(key, val)
		_, err := fromViper(v)
		assert.Error(t, err, key)
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "despensa", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/despensa?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestFromViper_ScorerJaroWinkler(t *testing.T) {
	v := viper.New()
	v.Set("MATCH_FALLBACK_SCORER", "JaroWinkler")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, ScorerJaroWinkler, cfg.Match.FallbackScorer)
}
