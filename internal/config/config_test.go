package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// unset clears an env var for the duration of the test.
func unset(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Setenv(key, old) })
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_DB", "CORS_ORIGINS"} {
		unset(t, key)
	}

	cfg := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "dalbhaat", cfg.MongoDB)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MONGO_DB", "shop")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "shop", cfg.MongoDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestSplitListDropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"a"}, splitList("a,,  "))
}
