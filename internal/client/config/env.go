package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/storyshare/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "STORYSHARE_"

// parseEnv loads the dotenv file (-env, or ./.env when present) into the
// process environment without overriding variables that are already set,
// then overlays cfg with the STORYSHARE_* variables.
func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvFilePath(args); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load env file %s: %w", path, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	envString(&cfg.APIBaseURL, "API_BASE_URL")
	if err := envDuration(&cfg.HTTPTimeout, "HTTP_TIMEOUT"); err != nil {
		return err
	}
	if err := envInt(&cfg.FeedPageSize, "FEED_PAGE_SIZE"); err != nil {
		return err
	}
	if err := envBool(&cfg.FeedWithLocation, "FEED_WITH_LOCATION"); err != nil {
		return err
	}
	envString(&cfg.DatabasePath, "DATABASE_PATH")
	envString(&cfg.WorkDir, "WORK_DIR")
	if err := envInt(&cfg.ImageMaxBytes, "IMAGE_MAX_BYTES"); err != nil {
		return err
	}
	if err := envInt(&cfg.ImageMaxDimension, "IMAGE_MAX_DIMENSION"); err != nil {
		return err
	}
	envString(&cfg.CaptureCommand, "CAPTURE_COMMAND")
	envString(&cfg.LogBackend, "LOG_BACKEND")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.Location, "LOCATION")
	envString(&cfg.S3Endpoint, "S3_ENDPOINT")
	envString(&cfg.S3Region, "S3_REGION")
	envString(&cfg.S3Bucket, "S3_BUCKET")
	envString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	envString(&cfg.S3SecretKey, "S3_SECRET_KEY")
	return nil
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	return v, ok && v != ""
}

func envString(dst *string, name string) {
	if v, ok := lookup(name); ok {
		*dst = v
	}
}

func envInt(dst *int, name string) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = n
	return nil
}

func envBool(dst *bool, name string) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = b
	return nil
}

func envDuration(dst *time.Duration, name string) error {
	v, ok := lookup(name)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
	}
	*dst = d
	return nil
}
