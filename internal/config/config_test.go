package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/toyreact/internal/errors"
)

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultPort, cfg.Inspect.Port)
	assert.Equal(t, DefaultHost, cfg.Inspect.Host)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Render.KeepStaleChildren)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	src := `{
  "name": "demo",
  "render": {"keepStaleChildren": true, "minify": true},
  "inspect": {"port": 8080},
  "log": {"level": "debug"}
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(src), 0644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Name)
	assert.True(t, cfg.Render.KeepStaleChildren)
	assert.True(t, cfg.Render.Minify)
	assert.Equal(t, 8080, cfg.Inspect.Port)
	assert.Equal(t, DefaultHost, cfg.Inspect.Host, "unset fields keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.Path())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	src := "name: yamlish\ninspect:\n  host: 0.0.0.0\n  allowOrigins: [\"*\"]\nmetrics:\n  namespace: ui\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toyreact.yaml"), []byte(src), 0644))

	cfg, err := Load(dir)

	require.NoError(t, err)
	assert.Equal(t, "yamlish", cfg.Name)
	assert.Equal(t, "0.0.0.0", cfg.Inspect.Host)
	assert.Equal(t, []string{"*"}, cfg.Inspect.AllowOrigins)
	assert.Equal(t, "ui", cfg.Metrics.Namespace)
	assert.Equal(t, DefaultPort, cfg.Inspect.Port)
}

func TestLoadInvalidSyntax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := LoadFile(path)

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E302"))
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.True(t, errors.HasCode(err, "E301"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too high", func(c *Config) { c.Inspect.Port = 70000 }},
		{"negative port", func(c *Config) { c.Inspect.Port = -1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad namespace", func(c *Config) { c.Metrics.Namespace = "has-dash" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, "E303"))
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := New()
	cfg.Name = "saved"
	cfg.Render.Pretty = true

	require.NoError(t, cfg.SaveTo(path))
	loaded, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Name)
	assert.True(t, loaded.Render.Pretty)
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	}
	for level, want := range tests {
		cfg := New()
		cfg.Log.Level = level
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
