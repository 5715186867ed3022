package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from environment variables
// (optionally seeded from configs/.env).
type Config struct {
	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`

	NoteRSSURL          string `mapstructure:"note_rss_url"`
	YouTubeHandleURL    string `mapstructure:"youtube_handle_url"`
	YouTubeMetaFallback bool   `mapstructure:"youtube_meta_fallback"`
	NoteLimit           int    `mapstructure:"note_limit"`
	YouTubeLimit        int    `mapstructure:"youtube_limit"`

	UserAgent           string        `mapstructure:"user_agent"`
	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`

	OutputPath     string `mapstructure:"output_path"`
	PublishersFile string `mapstructure:"publishers_file"`
}

const (
	DefaultUserAgent        = "all-man-bot/1.1 (+https://github.com/)"
	DefaultNoteRSSURL       = "https://note.com/biz_organized/rss"
	DefaultYouTubeHandleURL = "https://www.youtube.com/@jazz-manbo"
	DefaultOutputPath       = "data/feeds.json"
)

// Load reads configuration from environment variables and the optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "site-feeds")
	v.SetDefault("log_level", "info")
	v.SetDefault("note_rss_url", DefaultNoteRSSURL)
	v.SetDefault("youtube_handle_url", DefaultYouTubeHandleURL)
	v.SetDefault("youtube_meta_fallback", false)
	v.SetDefault("note_limit", 6)
	v.SetDefault("youtube_limit", 8)
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("fetch_timeout_seconds", 25)
	v.SetDefault("output_path", DefaultOutputPath)
	v.SetDefault("publishers_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	if c.NoteLimit <= 0 {
		return fmt.Errorf("invalid note_limit (must be positive)")
	}
	if c.YouTubeLimit <= 0 {
		return fmt.Errorf("invalid youtube_limit (must be positive)")
	}
	c.NoteRSSURL = strings.TrimSpace(c.NoteRSSURL)
	c.YouTubeHandleURL = strings.TrimSpace(c.YouTubeHandleURL)
	c.OutputPath = strings.TrimSpace(c.OutputPath)
	c.PublishersFile = strings.TrimSpace(c.PublishersFile)
	if c.NoteRSSURL == "" {
		return fmt.Errorf("note_rss_url is required")
	}
	if c.YouTubeHandleURL == "" {
		return fmt.Errorf("youtube_handle_url is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path is required")
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	return nil
}
