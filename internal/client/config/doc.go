// Package config loads runtime configuration for the storyshare CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Optional dotenv file (-env, or ./.env) and STORYSHARE_* environment
//     variables. Variables already set in the process win over the file.
//  4. Command-line flags, which override everything else.
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://story-api.dicoding.dev/v1",
//	  "http_timeout": "30s",
//	  "feed_page_size": 10,
//	  "feed_with_location": true,
//	  "database_path": "storyshare.db",
//	  "work_dir": "images",
//	  "capture_command": "fswebcam --no-banner {out}",
//	  "location": "-6.2,106.8",
//	  "s3_endpoint": "http://localhost:9000",
//	  "s3_bucket": "stories"
//	}
//
// # Environment
//
// STORYSHARE_API_BASE_URL, STORYSHARE_HTTP_TIMEOUT, STORYSHARE_FEED_PAGE_SIZE,
// STORYSHARE_FEED_WITH_LOCATION, STORYSHARE_DATABASE_PATH, STORYSHARE_WORK_DIR,
// STORYSHARE_IMAGE_MAX_BYTES, STORYSHARE_IMAGE_MAX_DIMENSION,
// STORYSHARE_CAPTURE_COMMAND, STORYSHARE_LOG_BACKEND, STORYSHARE_LOG_LEVEL,
// STORYSHARE_LOCATION and STORYSHARE_S3_* (ENDPOINT, REGION, BUCKET,
// ACCESS_KEY, SECRET_KEY).
package config
