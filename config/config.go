package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Intent      IntentConfig      `yaml:"intent"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Anthropic   AnthropicConfig   `yaml:"anthropic"`
	Audio       AudioConfig       `yaml:"audio"`
	Storage     StorageConfig     `yaml:"storage"`
	Preferences PreferencesConfig `yaml:"preferences"`
	Timing      TimingConfig      `yaml:"timing"`
	Log         LogConfig         `yaml:"log"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	AllowedOrigins string `yaml:"allowed_origins"`
	AuthToken      string `yaml:"auth_token"`
	RateLimit      int    `yaml:"rate_limit"`
	RateWindow     string `yaml:"rate_window"`
	AccessLog      bool   `yaml:"access_log"`
}

// IntentConfig selects the interpreter backend: "gemini" or "anthropic".
type IntentConfig struct {
	Provider string `yaml:"provider"`
}

type GeminiConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	TextModel  string `yaml:"text_model"`
	ImageModel string `yaml:"image_model"`
	TTSModel   string `yaml:"tts_model"`
	Voice      string `yaml:"voice"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type AudioConfig struct {
	Output string `yaml:"output"`
}

type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
	URLExpiry string `yaml:"url_expiry"`
}

type PreferencesConfig struct {
	Path     string `yaml:"path"`
	Language string `yaml:"language"`
}

type TimingConfig struct {
	RemovalDelay   string `yaml:"removal_delay"`
	FeedbackDelay  string `yaml:"feedback_delay"`
	HighlightDelay string `yaml:"highlight_delay"`
	ErrorDismiss   string `yaml:"error_dismiss"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.AllowedOrigins == "" {
		c.Server.AllowedOrigins = "*"
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 30
	}
	if c.Server.RateWindow == "" {
		c.Server.RateWindow = "1m"
	}
	if c.Intent.Provider == "" {
		c.Intent.Provider = "gemini"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if c.Audio.Output == "" {
		c.Audio.Output = "pulse"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "vocalcart-images"
	}
	if c.Storage.URLExpiry == "" {
		c.Storage.URLExpiry = "24h"
	}
	if c.Preferences.Path == "" {
		c.Preferences.Path = "./data/preferences.yaml"
	}
	if c.Timing.RemovalDelay == "" {
		c.Timing.RemovalDelay = "300ms"
	}
	if c.Timing.FeedbackDelay == "" {
		c.Timing.FeedbackDelay = "350ms"
	}
	if c.Timing.HighlightDelay == "" {
		c.Timing.HighlightDelay = "800ms"
	}
	if c.Timing.ErrorDismiss == "" {
		c.Timing.ErrorDismiss = "4s"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) validate() error {
	switch c.Intent.Provider {
	case "gemini", "anthropic":
	default:
		return fmt.Errorf("unknown intent provider %q", c.Intent.Provider)
	}
	if c.Storage.Enabled && c.Storage.Endpoint == "" {
		return fmt.Errorf("storage.endpoint is required when storage is enabled")
	}
	return nil
}

// Duration parses a configured duration, returning fallback when value is
// empty or invalid.
func Duration(value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("parsing duration %q: %w", value, err)
	}
	if d < 0 {
		return fallback, fmt.Errorf("negative duration %q", value)
	}
	return d, nil
}
