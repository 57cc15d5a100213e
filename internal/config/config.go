package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	ConsumerKey       string `env:"TWITTER_CONSUMER_KEY"`
	ConsumerSecret    string `env:"TWITTER_CONSUMER_SECRET"`
	AccessToken       string `env:"TWITTER_ACCESS_TOKEN"`
	AccessTokenSecret string `env:"TWITTER_ACCESS_TOKEN_SECRET"`
	AutoFollowBackRaw string `env:"TWITTER_AUTO_FOLLOW_BACK"`

	RobotName  string        `env:"ROBOT_NAME" default:"ruboty"`
	ChunkPause time.Duration `env:"TWITTER_CHUNK_PAUSE" default:"200ms"`
	PostLog    string        `env:"TWITTER_POST_LOG"`

	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`
}

// AutoFollowBack reports whether TWITTER_AUTO_FOLLOW_BACK is exactly "1".
func (c *Config) AutoFollowBack() bool {
	return c.AutoFollowBackRaw == "1"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}
	return load()
}

func load() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	// Ordered so the reported variable is deterministic.
	required := []struct{ name, value string }{
		{"TWITTER_CONSUMER_KEY", cfg.ConsumerKey},
		{"TWITTER_CONSUMER_SECRET", cfg.ConsumerSecret},
		{"TWITTER_ACCESS_TOKEN", cfg.AccessToken},
		{"TWITTER_ACCESS_TOKEN_SECRET", cfg.AccessTokenSecret},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("missing required env var: %s", r.name)
		}
	}

	if cfg.RobotName == "" {
		return fmt.Errorf("ROBOT_NAME must not be empty")
	}
	if cfg.ChunkPause < 0 {
		return fmt.Errorf("TWITTER_CHUNK_PAUSE must not be negative, got %s", cfg.ChunkPause)
	}

	return nil
}
