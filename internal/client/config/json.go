package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/storyshare/internal/flagx"
	"github.com/dmitrijs2005/storyshare/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// leave the corresponding Config field untouched; pointers mark fields whose
// zero value is meaningful.
type JsonConfig struct {
	APIBaseURL       string         `json:"api_base_url"`
	HTTPTimeout      timex.Duration `json:"http_timeout"`
	FeedPageSize     int            `json:"feed_page_size"`
	FeedWithLocation *bool          `json:"feed_with_location"`

	DatabasePath      string `json:"database_path"`
	WorkDir           string `json:"work_dir"`
	ImageMaxBytes     int    `json:"image_max_bytes"`
	ImageMaxDimension int    `json:"image_max_dimension"`
	CaptureCommand    string `json:"capture_command"`

	LogBackend string `json:"log_backend"`
	LogLevel   string `json:"log_level"`
	Location   string `json:"location"`

	S3Endpoint  string `json:"s3_endpoint"`
	S3Region    string `json:"s3_region"`
	S3Bucket    string `json:"s3_bucket"`
	S3AccessKey string `json:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.HTTPTimeout.Duration > 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	setInt(&cfg.FeedPageSize, jc.FeedPageSize)
	if jc.FeedWithLocation != nil {
		cfg.FeedWithLocation = *jc.FeedWithLocation
	}
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.WorkDir, jc.WorkDir)
	setInt(&cfg.ImageMaxBytes, jc.ImageMaxBytes)
	setInt(&cfg.ImageMaxDimension, jc.ImageMaxDimension)
	setString(&cfg.CaptureCommand, jc.CaptureCommand)
	setString(&cfg.LogBackend, jc.LogBackend)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.Location, jc.Location)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v > 0 {
		*dst = v
	}
}
