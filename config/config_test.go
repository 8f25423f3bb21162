package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{".DS_Store"}, cfg.Dictionary.Ignore)
	assert.False(t, cfg.Dictionary.CaseSensitive)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
	assert.Equal(t, 50, cfg.Search.MaxLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: 9090
  allow_mutations: true
  title: Fruit Finder
dictionary:
  dir: /srv/words
  case_sensitive: true
  sources:
    - https://example.com/words.txt
search:
  default_limit: 10
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Server.AllowMutations)
	assert.Equal(t, "Fruit Finder", cfg.Server.Title)
	assert.Equal(t, "/srv/words", cfg.Dictionary.Dir)
	assert.True(t, cfg.Dictionary.CaseSensitive)
	assert.Equal(t, []string{"https://example.com/words.txt"}, cfg.Dictionary.Sources)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 50, cfg.Search.MaxLimit)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("AUTOCOMPLETE_SERVER_PORT", "8181")
	t.Setenv("AUTOCOMPLETE_DICTIONARY_SKIP_UNREADABLE", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.True(t, cfg.Dictionary.SkipUnreadable)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"negative shutdown", func(c *Config) { c.Server.ShutdownTimeout = -time.Second }},
		{"negative retries", func(c *Config) { c.Dictionary.HTTPRetries = -1 }},
		{"negative default limit", func(c *Config) { c.Search.DefaultLimit = -1 }},
		{"max below default", func(c *Config) { c.Search.MaxLimit = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAddr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 5000}
	assert.Equal(t, "0.0.0.0:5000", s.Addr())
}
