// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrMinSilenceInvalid is returned when MIN_SILENCE_SEC is not positive.
	ErrMinSilenceInvalid = errors.New("config: MIN_SILENCE_SEC must be positive")
	// ErrSilenceThreshInvalid is returned when SILENCE_THRESH_DB is outside [-120, 0].
	ErrSilenceThreshInvalid = errors.New("config: SILENCE_THRESH_DB must be within [-120, 0]")
)

// Config holds all configuration for the application.
type Config struct {
	// Tool paths
	FFmpegPath string `env:"FFMPEG_PATH" json:"ffmpeg_path,omitempty"` // Empty means "ffmpeg" from PATH

	// Output settings
	OutputDir string `env:"OUTPUT_DIR, default=tracks" json:"output_dir"`

	// Album metadata settings
	AlbumCacheFile       string `env:"ALBUM_CACHE_FILE, default=album_data.json" json:"album_cache_file"`
	MusicBrainzURL       string `env:"MUSICBRAINZ_URL" json:"musicbrainz_url,omitempty"`
	MusicBrainzUserAgent string `env:"MUSICBRAINZ_USER_AGENT" json:"musicbrainz_user_agent,omitempty"`

	// Silence detection settings
	MinSilenceSec   float64 `env:"MIN_SILENCE_SEC, default=1.0" json:"min_silence_sec"`
	SilenceThreshDB float64 `env:"SILENCE_THRESH_DB, default=-40" json:"silence_thresh_db"`

	// Processing settings
	MaxConcurrentExports int `env:"MAX_CONCURRENT_EXPORTS, default=3" json:"max_concurrent_exports"`

	// Optional S3 settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the detection parameters are sane.
func (c *Config) Validate() error {
	if c.MinSilenceSec <= 0 {
		return ErrMinSilenceInvalid
	}
	if c.SilenceThreshDB < -120 || c.SilenceThreshDB > 0 {
		return ErrSilenceThreshInvalid
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{OutputDir: %s, AlbumCacheFile: %s, MinSilenceSec: %g, SilenceThreshDB: %g, MaxConcurrentExports: %d, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.OutputDir,
		c.AlbumCacheFile,
		c.MinSilenceSec,
		c.SilenceThreshDB,
		c.MaxConcurrentExports,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
