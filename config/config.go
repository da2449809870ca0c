// Package config manages application configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration for the rename, stamp and download tools.
type Config struct {
	// KeywordsFile is the path to the keyword list used for PDF titles.
	KeywordsFile string `json:"keywords_file"`
	// NameFormat is the target filename template with {date} and {title} placeholders.
	NameFormat string `json:"name_format"`
	// PageWindow limits how many leading pages of a PDF are read.
	PageWindow int `json:"page_window"`
	// Placeholder is the title used when no keyword matches.
	Placeholder string `json:"placeholder"`
	// MaxTitleLength caps the matched title window before slugging.
	MaxTitleLength int `json:"max_title_length"`

	// YtdlpPath is the path to the yt-dlp executable (default: "yt-dlp")
	YtdlpPath string `json:"ytdlp_path"`
	// YtdlpTimeout is the maximum time to wait for one download
	YtdlpTimeout time.Duration `json:"ytdlp_timeout"`
	// DownloadDir is where downloaded media is saved
	DownloadDir string `json:"download_dir"`
	// Resolution is the default video resolution: highest, 1080p, 720p, 480p or 360p
	Resolution string `json:"resolution"`
	// AudioFormat is the codec used for audio-only downloads
	AudioFormat string `json:"audio_format"`
	// AudioQuality is the audio bitrate in kbps
	AudioQuality int `json:"audio_quality"`
	// YouTubeAPIKey enables metadata lookups through the YouTube Data API
	// instead of yt-dlp (optional)
	YouTubeAPIKey string `json:"youtube_api_key"`
}

// Resolutions lists the accepted values for Config.Resolution.
var Resolutions = []string{"highest", "1080p", "720p", "480p", "360p"}

// AudioFormats lists the accepted values for Config.AudioFormat.
var AudioFormats = []string{"mp3", "m4a", "opus", "wav", "flac"}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		KeywordsFile:   filepath.Join("components", "keywords.txt"),
		NameFormat:     "{date}_{title}",
		PageWindow:     3,
		Placeholder:    "Unknown",
		MaxTitleLength: 80,
		YtdlpPath:      "yt-dlp",
		YtdlpTimeout:   30 * time.Minute,
		DownloadDir:    ".",
		Resolution:     "highest",
		AudioFormat:    "mp3",
		AudioQuality:   192,
	}
}

// Load loads configuration from environment variables, config file, and applies defaults.
// Priority: env vars > config file > defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from filekit.json in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"filekit.json",
		filepath.Join(os.Getenv("HOME"), ".config", "filekit", "filekit.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("FILEKIT_KEYWORDS_FILE"); v != "" {
		c.KeywordsFile = v
	}
	if v := os.Getenv("FILEKIT_NAME_FORMAT"); v != "" {
		c.NameFormat = v
	}
	if v := os.Getenv("FILEKIT_PAGE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.PageWindow = n
		}
	}
	if v := os.Getenv("FILEKIT_PLACEHOLDER"); v != "" {
		c.Placeholder = v
	}
	if v := os.Getenv("FILEKIT_MAX_TITLE_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTitleLength = n
		}
	}
	if v := os.Getenv("FILEKIT_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("FILEKIT_YTDLP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.YtdlpTimeout = d
		}
	}
	if v := os.Getenv("FILEKIT_DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
	if v := os.Getenv("FILEKIT_RESOLUTION"); v != "" {
		c.Resolution = strings.ToLower(v)
	}
	if v := os.Getenv("FILEKIT_AUDIO_FORMAT"); v != "" {
		c.AudioFormat = strings.ToLower(v)
	}
	if v := os.Getenv("FILEKIT_AUDIO_QUALITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AudioQuality = n
		}
	}
	if v := os.Getenv("FILEKIT_YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
}

// Validate checks that configuration values are valid and consistent.
// It returns an error if any configuration value is invalid.
func (c *Config) Validate() error {
	if c.PageWindow <= 0 {
		return fmt.Errorf("page_window must be positive")
	}
	if c.MaxTitleLength <= 0 {
		return fmt.Errorf("max_title_length must be positive")
	}
	if strings.TrimSpace(c.Placeholder) == "" {
		return fmt.Errorf("placeholder must not be empty")
	}
	if strings.ContainsAny(c.Placeholder, `/\`) {
		return fmt.Errorf("placeholder must not contain path separators")
	}
	if err := ValidateNameFormat(c.NameFormat); err != nil {
		return err
	}
	if c.YtdlpTimeout <= 0 {
		return fmt.Errorf("ytdlp_timeout must be positive")
	}
	if !contains(Resolutions, c.Resolution) {
		return fmt.Errorf("resolution must be one of %s", strings.Join(Resolutions, ", "))
	}
	if !contains(AudioFormats, c.AudioFormat) {
		return fmt.Errorf("audio_format must be one of %s", strings.Join(AudioFormats, ", "))
	}
	if c.AudioQuality <= 0 {
		return fmt.Errorf("audio_quality must be positive")
	}
	return nil
}

// ValidateNameFormat checks a rename template. It must reference at least one
// placeholder and must not contain path separators.
func ValidateNameFormat(format string) error {
	if !strings.Contains(format, "{date}") && !strings.Contains(format, "{title}") {
		return fmt.Errorf("name_format must contain {date} or {title}")
	}
	if strings.ContainsAny(format, `/\`) {
		return fmt.Errorf("name_format must not contain path separators")
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
