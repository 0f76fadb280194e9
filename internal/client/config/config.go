package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/client/models"
)

// Config holds runtime settings for the storyshare CLI.
type Config struct {
	APIBaseURL       string
	HTTPTimeout      time.Duration
	FeedPageSize     int
	FeedWithLocation bool

	DatabasePath      string
	WorkDir           string
	ImageMaxBytes     int
	ImageMaxDimension int
	CaptureCommand    string

	LogBackend string
	LogLevel   string

	// Location is a fixed "lat,lon" fix used as the device position.
	Location string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://story-api.dicoding.dev/v1"
	c.HTTPTimeout = 30 * time.Second
	c.FeedPageSize = 10
	c.FeedWithLocation = false
	c.DatabasePath = "storyshare.db"
	c.WorkDir = "images"
	c.ImageMaxBytes = 1_000_000
	c.ImageMaxDimension = 1600
	c.CaptureCommand = ""
	c.LogBackend = "slog"
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the JSON file, the environment and
// finally the command-line flags found in args (os.Args[1:]). Later sources
// take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if _, err := cfg.StaticLocation(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// StaticLocation parses Location. It returns nil when no location is set.
func (c *Config) StaticLocation() (*models.Coordinates, error) {
	s := strings.TrimSpace(c.Location)
	if s == "" {
		return nil, nil
	}

	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid location %q: want \"lat,lon\"", c.Location)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", latStr, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", lonStr, err)
	}
	return &models.Coordinates{Lat: lat, Lon: lon}, nil
}
