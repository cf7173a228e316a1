package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

const (
	defaultDBPath       = "arcade.db"
	defaultFetchTimeout = 10 * time.Second
)

// Config holds runtime settings for the CLI app.
type Config struct {
	FeedURL      string
	DBPath       string
	LogPath      string
	FetchTimeout time.Duration
	Debug        bool
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		FeedURL:      os.Getenv("ARCADE_FEED_URL"),
		DBPath:       os.Getenv("ARCADE_DB_PATH"),
		LogPath:      os.Getenv("ARCADE_LOG_PATH"),
		FetchTimeout: defaultFetchTimeout,
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if raw := os.Getenv("ARCADE_FETCH_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("ARCADE_FETCH_TIMEOUT must be a duration: %w", err)
		}
		cfg.FetchTimeout = d
	}
	if raw := os.Getenv("ARCADE_DEBUG"); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("ARCADE_DEBUG must be a boolean: %w", err)
		}
		cfg.Debug = debug
	}

	return cfg, nil
}

// AddFlags binds command-line overrides to c. Current values become the
// flag defaults, so flags win over the environment.
func (c *Config) AddFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.FeedURL, "feed-url", c.FeedURL, "URL of the game feed (env ARCADE_FEED_URL)")
	flagSet.StringVar(&c.DBPath, "db", c.DBPath, "sqlite file holding bookmarks (env ARCADE_DB_PATH)")
	flagSet.StringVar(&c.LogPath, "log-output", c.LogPath, "write JSON log records to this file (env ARCADE_LOG_PATH)")
	flagSet.DurationVar(&c.FetchTimeout, "timeout", c.FetchTimeout, "feed fetch timeout (env ARCADE_FETCH_TIMEOUT)")
	flagSet.BoolVar(&c.Debug, "debug", c.Debug, "log at debug level (env ARCADE_DEBUG)")
}

func (c Config) Validate() error {
	if c.FeedURL == "" {
		return errors.New("ARCADE_FEED_URL is required")
	}
	parsed, err := url.Parse(c.FeedURL)
	if err != nil {
		return fmt.Errorf("FeedURL is invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("FeedURL must use http or https: %s", c.FeedURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("FeedURL has no host: %s", c.FeedURL)
	}
	if c.DBPath == "" {
		return errors.New("DBPath is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FetchTimeout must be positive: %s", c.FetchTimeout)
	}
	return nil
}
