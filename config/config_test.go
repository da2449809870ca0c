package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "{date}_{title}", cfg.NameFormat)
	assert.Equal(t, 3, cfg.PageWindow)
	assert.Equal(t, "Unknown", cfg.Placeholder)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("FILEKIT_KEYWORDS_FILE", "/tmp/kw.txt")
	t.Setenv("FILEKIT_NAME_FORMAT", "{title}-{date}")
	t.Setenv("FILEKIT_PAGE_WINDOW", "5")
	t.Setenv("FILEKIT_YTDLP_TIMEOUT", "90s")
	t.Setenv("FILEKIT_RESOLUTION", "720P")
	t.Setenv("FILEKIT_AUDIO_FORMAT", "m4a")
	t.Setenv("FILEKIT_YOUTUBE_API_KEY", "key-123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/kw.txt", cfg.KeywordsFile)
	assert.Equal(t, "{title}-{date}", cfg.NameFormat)
	assert.Equal(t, 5, cfg.PageWindow)
	assert.Equal(t, 90*time.Second, cfg.YtdlpTimeout)
	assert.Equal(t, "720p", cfg.Resolution)
	assert.Equal(t, "m4a", cfg.AudioFormat)
	assert.Equal(t, "key-123", cfg.YouTubeAPIKey)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filekit.json"),
		[]byte(`{"placeholder": "Unbenannt", "page_window": 2}`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Unbenannt", cfg.Placeholder)
	assert.Equal(t, 2, cfg.PageWindow)
	assert.Equal(t, "mp3", cfg.AudioFormat)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "filekit.json"), []byte(`{`), 0o644))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero page window", func(c *Config) { c.PageWindow = 0 }},
		{"zero title length", func(c *Config) { c.MaxTitleLength = 0 }},
		{"blank placeholder", func(c *Config) { c.Placeholder = "  " }},
		{"placeholder with slash", func(c *Config) { c.Placeholder = "a/b" }},
		{"placeholder with backslash", func(c *Config) { c.Placeholder = `a\b` }},
		{"format without placeholders", func(c *Config) { c.NameFormat = "scan" }},
		{"format with separator", func(c *Config) { c.NameFormat = "{date}/{title}" }},
		{"zero timeout", func(c *Config) { c.YtdlpTimeout = 0 }},
		{"unknown resolution", func(c *Config) { c.Resolution = "4k" }},
		{"unknown audio format", func(c *Config) { c.AudioFormat = "aac" }},
		{"zero audio quality", func(c *Config) { c.AudioQuality = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
