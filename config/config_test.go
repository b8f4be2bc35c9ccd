package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, []string{"en", "en-US", "en-GB"}, cfg.Captions.Languages)
	assert.Equal(t, "llama3-8b-8192", cfg.Blog.Model)
	assert.Equal(t, float32(0.3), cfg.Blog.Temperature)
	assert.Equal(t, 2000, cfg.Blog.MaxTokens)
	assert.Equal(t, 5000, cfg.Blog.CharBudget)
	assert.Equal(t, DefaultGroqBaseURL, cfg.Blog.BaseURL)
	assert.False(t, cfg.HasAPIKey())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "  gsk_test  ")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("READ_TIMEOUT", "10s")
	t.Setenv("REQUEST_TIMEOUT", "5m")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("BLOG_TEMPERATURE", "0.7")
	t.Setenv("TRANSCRIPT_CHAR_BUDGET", "1200")
	t.Setenv("CAPTION_LANGUAGES", "de, en ,")
	t.Setenv("SESSION_STORE", "sqlite")
	t.Setenv("DB_PATH", "/tmp/yt-blog-test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "gsk_test", cfg.Blog.APIKey)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Blog.Model)
	assert.InDelta(t, 0.7, cfg.Blog.Temperature, 1e-6)
	assert.Equal(t, 1200, cfg.Blog.CharBudget)
	assert.Equal(t, []string{"de", "en"}, cfg.Captions.Languages)
	assert.Equal(t, SessionStoreSQLite, cfg.SessionStore)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("BLOG_MAX_TOKENS", "lots")
	t.Setenv("DEBUG", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 2000, cfg.Blog.MaxTokens)
	assert.False(t, cfg.Debug)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown store", func(c *Config) { c.SessionStore = "redis" }},
		{"zero budget", func(c *Config) { c.Blog.CharBudget = 0 }},
		{"no languages", func(c *Config) { c.Captions.Languages = nil }},
		{"hot temperature", func(c *Config) { c.Blog.Temperature = 3 }},
		{"zero read timeout", func(c *Config) { c.ReadTimeout = 0 }},
		{"sqlite without path", func(c *Config) { c.SessionStore = SessionStoreSQLite; c.DBPath = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
